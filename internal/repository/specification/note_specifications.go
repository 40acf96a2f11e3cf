package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Note specifications qualify their columns with "notes." because the
// school-affinity specs join profiles, which shares id and timestamp names.

type PublicNotes struct{}

func (s PublicNotes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.is_public = ?", true)
}

type BySubject struct {
	Subject string
}

func (s BySubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.subject = ?", s.Subject)
}

type ByClassName struct {
	ClassName string
}

func (s ByClassName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.class_name = ?", s.ClassName)
}

type ByNoteType struct {
	NoteType string
}

func (s ByNoteType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.note_type = ?", s.NoteType)
}

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// OwnerInSchool keeps notes whose owner's profile belongs to the school.
type OwnerInSchool struct {
	SchoolID uuid.UUID
}

func (s OwnerInSchool) Apply(db *gorm.DB) *gorm.DB {
	return db.Select("notes.*").
		Joins("JOIN profiles ON profiles.id = notes.user_id").
		Where("profiles.school_id = ?", s.SchoolID)
}

// OwnerOutsideSchool keeps notes whose owner has a different school. Owners
// without a school match neither this nor OwnerInSchool.
type OwnerOutsideSchool struct {
	SchoolID uuid.UUID
}

func (s OwnerOutsideSchool) Apply(db *gorm.DB) *gorm.DB {
	return db.Select("notes.*").
		Joins("JOIN profiles ON profiles.id = notes.user_id").
		Where("profiles.school_id <> ?", s.SchoolID)
}

// WithOwner preloads the owner profile and its school.
type WithOwner struct{}

func (s WithOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner.School")
}

type MostRated struct{}

func (s MostRated) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("notes.rating_count DESC")
}

type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("notes.created_at DESC")
}

// ByRater finds the rating a user gave a note.
type ByRater struct {
	NoteID uuid.UUID
	UserID uuid.UUID
}

func (s ByRater) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ? AND user_id = ?", s.NoteID, s.UserID)
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
type ForUpdate struct{}

func (s ForUpdate) Apply(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
