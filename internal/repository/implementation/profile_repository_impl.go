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
	"gorm.io/gorm/clause"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile *entity.Profile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).
		Omit("School").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "full_name", "bio", "school_id", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	var m model.Profile
	query := applySpecifications(r.db.WithContext(ctx).Preload("School"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type SchoolRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewSchoolRepository(db *gorm.DB) contract.SchoolRepository {
	return &SchoolRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *SchoolRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.School, error) {
	var m model.School
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SchoolToEntity(&m), nil
}

func (r *SchoolRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.School, error) {
	var models []*model.School
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.SchoolsToEntities(models), nil
}
