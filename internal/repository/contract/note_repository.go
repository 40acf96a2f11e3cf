package contract

import (
	"context"

	"notehub-be/internal/entity"
	"notehub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// AdjustRating adds the deltas to rating_sum and rating_count in one statement.
	AdjustRating(ctx context.Context, id uuid.UUID, sumDelta, countDelta int) error
}

type NoteRatingRepository interface {
	Create(ctx context.Context, rating *entity.NoteRating) error
	Update(ctx context.Context, rating *entity.NoteRating) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteRating, error)
}
