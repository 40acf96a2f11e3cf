package mapper

import (
	"time"

	"notehub-be/internal/entity"
	"notehub-be/internal/model"
)

type NoteMapper struct {
	profiles *ProfileMapper
}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{profiles: NewProfileMapper()}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		Subject:     n.Subject,
		ClassName:   n.ClassName,
		NoteType:    entity.NoteType(n.NoteType),
		RatingSum:   n.RatingSum,
		RatingCount: n.RatingCount,
		UserId:      n.UserId,
		IsPublic:    n.IsPublic,
		FileUrl:     n.FileUrl,
		FileName:    n.FileName,
		FileSize:    n.FileSize,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
		Owner:       m.profiles.ToEntity(n.Owner),
	}
}

// ToModel leaves Owner unset so saves never cascade into profiles.
func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	noteType := n.NoteType
	if noteType == "" {
		noteType = entity.NoteTypeOther
	}

	return &model.Note{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		Subject:     n.Subject,
		ClassName:   n.ClassName,
		NoteType:    string(noteType),
		RatingSum:   n.RatingSum,
		RatingCount: n.RatingCount,
		UserId:      n.UserId,
		IsPublic:    n.IsPublic,
		FileUrl:     n.FileUrl,
		FileName:    n.FileName,
		FileSize:    n.FileSize,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) RatingToEntity(r *model.NoteRating) *entity.NoteRating {
	if r == nil {
		return nil
	}
	return &entity.NoteRating{
		Id:        r.Id,
		NoteId:    r.NoteId,
		UserId:    r.UserId,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *NoteMapper) RatingToModel(r *entity.NoteRating) *model.NoteRating {
	if r == nil {
		return nil
	}
	return &model.NoteRating{
		Id:        r.Id,
		NoteId:    r.NoteId,
		UserId:    r.UserId,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
