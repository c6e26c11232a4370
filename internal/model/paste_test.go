package model

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestPasteIDColumnIsUnbounded(t *testing.T) {
	s, err := schema.Parse(&Paste{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if s.Table != "pastes" {
		t.Fatalf("table = %q", s.Table)
	}
	id := s.LookUpField("ID")
	if id == nil || !id.PrimaryKey {
		t.Fatalf("ID is not the primary key: %+v", id)
	}
	if got := id.TagSettings["TYPE"]; got != "text" {
		t.Fatalf("id column type = %q, want text", got)
	}
}
