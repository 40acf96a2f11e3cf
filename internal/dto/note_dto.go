package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Subject     string  `json:"subject" validate:"required,max=255"`
	ClassName   string  `json:"class_name" validate:"required,max=255"`
	NoteType    string  `json:"note_type" validate:"omitempty,oneof=lecture lab assignment exam project study_guide other"`
	IsPublic    *bool   `json:"is_public"`
	FileUrl     string  `json:"file_url" validate:"omitempty,url"`
	FileName    string  `json:"file_name" validate:"max=255"`
	FileSize    int64   `json:"file_size" validate:"gte=0"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

// UpdateNoteRequest is a partial update: nil fields keep their stored value.
type UpdateNoteRequest struct {
	Id          uuid.UUID
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Subject     *string `json:"subject" validate:"omitempty,max=255"`
	ClassName   *string `json:"class_name" validate:"omitempty,max=255"`
	NoteType    *string `json:"note_type" validate:"omitempty,oneof=lecture lab assignment exam project study_guide other"`
	IsPublic    *bool   `json:"is_public"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListNotesRequest struct {
	Query     string `query:"q"`
	Subject   string `query:"subject"`
	ClassName string `query:"class_name"`
	NoteType  string `query:"note_type" validate:"omitempty,oneof=lecture lab assignment exam project study_guide other"`
	Limit     int    `query:"limit" validate:"gte=0,lte=100"`
	Offset    int    `query:"offset" validate:"gte=0"`
}

type ListNotesResponse struct {
	Notes  []*NoteResponse `json:"notes"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type NoteOwnerResponse struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

type NoteResponse struct {
	Id            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Description   *string            `json:"description"`
	Subject       string             `json:"subject"`
	ClassName     string             `json:"class_name"`
	NoteType      string             `json:"note_type"`
	RatingSum     int                `json:"rating_sum"`
	RatingCount   int                `json:"rating_count"`
	AverageRating float64            `json:"average_rating"`
	UserId        uuid.UUID          `json:"user_id"`
	IsPublic      bool               `json:"is_public"`
	FileUrl       string             `json:"file_url"`
	FileName      string             `json:"file_name"`
	FileSize      int64              `json:"file_size"`
	Owner         *NoteOwnerResponse `json:"owner,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at"`
}

type RateNoteRequest struct {
	NoteId uuid.UUID
	Score  int `json:"score" validate:"required,min=1,max=5"`
}

type RateNoteResponse struct {
	NoteId        uuid.UUID `json:"note_id"`
	Score         int       `json:"score"`
	RatingSum     int       `json:"rating_sum"`
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
}

// NoteActivityMessage travels on the in-process activity bus.
type NoteActivityMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
