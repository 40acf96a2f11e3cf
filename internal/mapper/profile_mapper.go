package mapper

import (
	"notehub-be/internal/entity"
	"notehub-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:        p.Id,
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		SchoolId:  p.SchoolId,
		School:    m.SchoolToEntity(p.School),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:        p.Id,
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		SchoolId:  p.SchoolId,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) SchoolToEntity(s *model.School) *entity.School {
	if s == nil {
		return nil
	}
	return &entity.School{Id: s.Id, Name: s.Name, CreatedAt: s.CreatedAt}
}

func (m *ProfileMapper) SchoolsToEntities(schools []*model.School) []*entity.School {
	out := make([]*entity.School, len(schools))
	for i, s := range schools {
		out[i] = m.SchoolToEntity(s)
	}
	return out
}
