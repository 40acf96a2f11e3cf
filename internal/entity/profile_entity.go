package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors the identity provider's user; Id is the auth user id.
type Profile struct {
	Id        uuid.UUID
	Username  string
	FullName  string
	Bio       string
	SchoolId  *uuid.UUID
	School    *School
	CreatedAt time.Time
	UpdatedAt time.Time
}

type School struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}
