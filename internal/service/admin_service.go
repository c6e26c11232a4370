package service

import (
	"crypto/subtle"

	"pastebin/kvpaste/internal/config"
	"pastebin/kvpaste/pkg/crypto"
)

type AdminService interface {
	// VerifyPin returns ErrInvalidPin when pin does not match the admin secret.
	VerifyPin(pin string) error
}

type adminService struct {
	pin     []byte
	pinHash string
}

func NewAdminService(cfg config.AdminConfig) AdminService {
	return &adminService{pin: []byte(cfg.Pin), pinHash: cfg.PinHash}
}

func (s *adminService) VerifyPin(pin string) error {
	if s.pinHash != "" {
		if !crypto.CheckPin(pin, s.pinHash) {
			return ErrInvalidPin
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(pin), s.pin) != 1 {
		return ErrInvalidPin
	}
	return nil
}
