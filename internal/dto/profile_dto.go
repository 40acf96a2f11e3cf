package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=64"`
	FullName string     `json:"full_name" validate:"max=255"`
	Bio      string     `json:"bio" validate:"max=2000"`
	SchoolId *uuid.UUID `json:"school_id"`
}

type SchoolResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProfileResponse struct {
	Id        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	FullName  string          `json:"full_name"`
	Bio       string          `json:"bio"`
	SchoolId  *uuid.UUID      `json:"school_id"`
	School    *SchoolResponse `json:"school,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
