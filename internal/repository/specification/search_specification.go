package specification

import (
	"strings"

	"gorm.io/gorm"
)

// NoteSearchQuery matches title, class or subject case-insensitively.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(s.Query) + "%"
	return db.Where("notes.title ILIKE ? OR notes.class_name ILIKE ? OR notes.subject ILIKE ?", pattern, pattern, pattern)
}

// ByUsername filters profiles by exact username.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
