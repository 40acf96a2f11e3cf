package service

import (
	"context"
	"strings"
	"time"

	"notehub-be/internal/dto"
	"notehub-be/internal/entity"
	"notehub-be/internal/repository/memory"
	"notehub-be/internal/repository/specification"
	"notehub-be/internal/repository/unitofwork"
	"notehub-be/pkg/apperror"

	"github.com/google/uuid"
)

const SchoolCacheTTL = 10 * time.Minute

type IProfileService interface {
	GetMe(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error)
	ListSchools(ctx context.Context) ([]*dto.SchoolResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	schools    *memory.SchoolRepository
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory, schools *memory.SchoolRepository) IProfileService {
	if schools == nil {
		schools = memory.NewSchoolRepository(SchoolCacheTTL)
	}
	return &profileService{
		uowFactory: uowFactory,
		schools:    schools,
	}
}

func (s *profileService) GetMe(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	return s.Get(ctx, userId)
}

func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return toProfileResponse(profile), nil
}

// UpdateMe creates the caller's profile on first use.
func (s *profileService) UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	username := strings.TrimSpace(req.Username)
	taken, err := uow.ProfileRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken != nil && taken.Id != userId {
		return nil, ErrUsernameTaken
	}

	if req.SchoolId != nil {
		school, err := uow.SchoolRepository().FindOne(ctx, specification.ByID{ID: *req.SchoolId})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if school == nil {
			return nil, ErrSchoolNotFound
		}
	}

	now := time.Now()
	profile := &entity.Profile{
		Id:        userId,
		Username:  username,
		FullName:  strings.TrimSpace(req.FullName),
		Bio:       req.Bio,
		SchoolId:  req.SchoolId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ProfileRepository().Save(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}

	return s.Get(ctx, userId)
}

func (s *profileService) ListSchools(ctx context.Context) ([]*dto.SchoolResponse, error) {
	schools, ok := s.schools.Get()
	if !ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		found, err := uow.SchoolRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		s.schools.Save(found)
		schools = found
	}

	res := make([]*dto.SchoolResponse, 0, len(schools))
	for _, sc := range schools {
		res = append(res, toSchoolResponse(sc))
	}
	return res, nil
}

func toSchoolResponse(s *entity.School) *dto.SchoolResponse {
	if s == nil {
		return nil
	}
	return &dto.SchoolResponse{Id: s.Id, Name: s.Name}
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Id:        p.Id,
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		SchoolId:  p.SchoolId,
		School:    toSchoolResponse(p.School),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
