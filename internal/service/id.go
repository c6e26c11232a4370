package service

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratedIDLength is the length of ids minted when the client names none.
const GeneratedIDLength = 8

// AllocateID returns name unchanged when it has any non-space content,
// otherwise a fresh short id cut from a random UUID. Existing keys are not
// consulted: reusing a name overwrites that paste.
func AllocateID(name *string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return *name
	}
	return uuid.New().String()[:GeneratedIDLength]
}
