package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string

const (
	NoteTypeLecture    NoteType = "lecture"
	NoteTypeLab        NoteType = "lab"
	NoteTypeAssignment NoteType = "assignment"
	NoteTypeExam       NoteType = "exam"
	NoteTypeProject    NoteType = "project"
	NoteTypeStudyGuide NoteType = "study_guide"
	NoteTypeOther      NoteType = "other"
)

// NoteTypes lists every accepted note type, in display order.
var NoteTypes = []NoteType{
	NoteTypeLecture,
	NoteTypeLab,
	NoteTypeAssignment,
	NoteTypeExam,
	NoteTypeProject,
	NoteTypeStudyGuide,
	NoteTypeOther,
}

func (t NoteType) Valid() bool {
	for _, nt := range NoteTypes {
		if nt == t {
			return true
		}
	}
	return false
}

type Note struct {
	Id          uuid.UUID
	Title       string
	Description *string
	Subject     string
	ClassName   string
	NoteType    NoteType
	RatingSum   int
	RatingCount int
	UserId      uuid.UUID
	IsPublic    bool
	FileUrl     string
	FileName    string
	FileSize    int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	// Owner is only populated when the query preloads the profile.
	Owner *Profile
}

// AverageRating is rating_sum / rating_count, or 0 for unrated notes.
func (n *Note) AverageRating() float64 {
	if n.RatingCount <= 0 {
		return 0
	}
	return float64(n.RatingSum) / float64(n.RatingCount)
}

func (n *Note) VisibleTo(userId *uuid.UUID) bool {
	return n.IsPublic || (userId != nil && *userId == n.UserId)
}

type NoteRating struct {
	Id        uuid.UUID
	NoteId    uuid.UUID
	UserId    uuid.UUID
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
