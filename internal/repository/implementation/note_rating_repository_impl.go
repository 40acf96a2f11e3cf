package implementation

import (
	"context"
	"errors"

	"notehub-be/internal/entity"
	"notehub-be/internal/mapper"
	"notehub-be/internal/model"
	"notehub-be/internal/repository/contract"
	"notehub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type NoteRatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRatingRepository(db *gorm.DB) contract.NoteRatingRepository {
	return &NoteRatingRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRatingRepositoryImpl) Create(ctx context.Context, rating *entity.NoteRating) error {
	m := r.mapper.RatingToModel(rating)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rating = *r.mapper.RatingToEntity(m)
	return nil
}

func (r *NoteRatingRepositoryImpl) Update(ctx context.Context, rating *entity.NoteRating) error {
	return r.db.WithContext(ctx).Model(&model.NoteRating{}).
		Where("id = ?", rating.Id).
		Update("score", rating.Score).Error
}

func (r *NoteRatingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteRating, error) {
	var m model.NoteRating
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RatingToEntity(&m), nil
}
