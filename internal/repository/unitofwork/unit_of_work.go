package unitofwork

import (
	"context"

	"notehub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	NoteRatingRepository() contract.NoteRatingRepository
	ProfileRepository() contract.ProfileRepository
	SchoolRepository() contract.SchoolRepository
}
