package contract

import (
	"context"

	"notehub-be/internal/entity"
	"notehub-be/internal/repository/specification"
)

type ProfileRepository interface {
	// Save inserts the profile or updates it when the id already exists.
	Save(ctx context.Context, profile *entity.Profile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error)
}

type SchoolRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.School, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.School, error)
}
