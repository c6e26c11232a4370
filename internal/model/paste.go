package model

import "time"

// Paste is the row layout used by the postgres backend. The redis and memory
// backends keep the same data natively: key = ID, value = Content, store TTL = ExpiresAt.
type Paste struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Paste) TableName() string { return "pastes" }

// ListEntry is one element of the paste listing. Key duplicates ID for
// clients that read either field.
type ListEntry struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	TTL TTL    `json:"ttl"`
}
