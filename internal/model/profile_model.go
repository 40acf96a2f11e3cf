package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile rows are keyed by the identity provider's user id, so there is no
// database default for Id.
type Profile struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username  string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	FullName  string     `gorm:"type:varchar(255)"`
	Bio       string     `gorm:"type:text"`
	SchoolId  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	School *School `gorm:"foreignKey:SchoolId;references:Id"`
}

func (Profile) TableName() string {
	return "profiles"
}

type School struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (School) TableName() string {
	return "schools"
}
