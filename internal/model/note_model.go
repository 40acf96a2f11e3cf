package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description *string        `gorm:"type:text"`
	Subject     string         `gorm:"type:varchar(255);not null;index"`
	ClassName   string         `gorm:"type:varchar(255);not null;index"`
	NoteType    string         `gorm:"type:varchar(32);not null;default:'other'"`
	RatingSum   int            `gorm:"not null;default:0"`
	RatingCount int            `gorm:"not null;default:0;index"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	IsPublic    bool           `gorm:"not null;default:true;index"`
	FileUrl     string         `gorm:"type:text"`
	FileName    string         `gorm:"type:varchar(255)"`
	FileSize    int64          `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Owner *Profile `gorm:"foreignKey:UserId;references:Id"`
}

func (Note) TableName() string {
	return "notes"
}

type NoteRating struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_ratings_note_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_ratings_note_user"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NoteRating) TableName() string {
	return "note_ratings"
}
