// FILE: internal/service/note_service.go
package service

import (
	"context"
	"strings"
	"time"

	"notehub-be/internal/dto"
	"notehub-be/internal/entity"
	"notehub-be/internal/pkg/logger"
	"notehub-be/internal/repository/specification"
	"notehub-be/internal/repository/unitofwork"
	"notehub-be/pkg/apperror"
	"notehub-be/pkg/events"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	List(ctx context.Context, req *dto.ListNotesRequest) (*dto.ListNotesResponse, error)
	Mine(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId *uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Rate(ctx context.Context, userId uuid.UUID, req *dto.RateNoteRequest) (*dto.RateNoteResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Subject:     strings.TrimSpace(req.Subject),
		ClassName:   strings.TrimSpace(req.ClassName),
		NoteType:    entity.NoteType(req.NoteType),
		UserId:      userId,
		IsPublic:    true,
		FileUrl:     req.FileUrl,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		CreatedAt:   time.Now(),
	}
	if !note.NoteType.Valid() {
		note.NoteType = entity.NoteTypeOther
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperror.Internal(err)
	}

	s.publish(ctx, events.New(events.TypeNoteUploaded, map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": userId.String(),
		"title":   note.Title,
	}))

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) List(ctx context.Context, req *dto.ListNotesRequest) (*dto.ListNotesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	filters := []specification.Specification{specification.PublicNotes{}}
	if q := strings.TrimSpace(req.Query); q != "" {
		filters = append(filters, specification.NoteSearchQuery{Query: q})
	}
	if req.Subject != "" {
		filters = append(filters, specification.BySubject{Subject: req.Subject})
	}
	if req.ClassName != "" {
		filters = append(filters, specification.ByClassName{ClassName: req.ClassName})
	}
	if req.NoteType != "" {
		filters = append(filters, specification.ByNoteType{NoteType: req.NoteType})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.NoteRepository().Count(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	notes, err := uow.NoteRepository().FindAll(ctx, withSpecs(filters,
		specification.WithOwner{},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.ListNotesResponse{
		Notes:  toNoteResponses(notes),
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

func (s *noteService) Mine(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.WithOwner{},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *noteService) ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: ownerId},
		specification.PublicNotes{},
		specification.WithOwner{},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *noteService) Show(ctx context.Context, userId *uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.WithOwner{},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Private notes are reported as missing to anyone but their owner.
	if note == nil || !note.VisibleTo(userId) {
		return nil, ErrNoteNotFound
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	title, err := requiredField(req.Title, note.Title, ErrTitleRequired)
	if err != nil {
		return nil, err
	}
	subject, err := requiredField(req.Subject, note.Subject, ErrSubjectRequired)
	if err != nil {
		return nil, err
	}
	className, err := requiredField(req.ClassName, note.ClassName, ErrClassNameRequired)
	if err != nil {
		return nil, err
	}
	note.Title, note.Subject, note.ClassName = title, subject, className

	if req.Description != nil {
		// An empty description clears it.
		if d := strings.TrimSpace(*req.Description); d != "" {
			note.Description = &d
		} else {
			note.Description = nil
		}
	}
	if req.NoteType != nil && *req.NoteType != "" {
		note.NoteType = entity.NoteType(*req.NoteType)
	}
	if req.IsPublic != nil {
		note.IsPublic = *req.IsPublic
	}

	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

// requiredField returns current when value is nil and rejects a blank value.
func requiredField(value *string, current string, blank error) (string, error) {
	if value == nil {
		return current, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return "", blank
	}
	return v, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return apperror.Internal(err)
	}

	s.publish(ctx, events.New(events.TypeNoteDeleted, map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": userId.String(),
	}))
	return nil
}

// Rate records the caller's score. A second rating by the same user replaces
// the first, so rating_count only grows on the first one.
func (s *noteService) Rate(ctx context.Context, userId uuid.UUID, req *dto.RateNoteRequest) (*dto.RateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	// Locking the note row serializes concurrent ratings of it.
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.NoteId}, specification.ForUpdate{})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if note == nil || !note.VisibleTo(&userId) {
		return nil, ErrNoteNotFound
	}
	if note.UserId == userId {
		return nil, ErrRateOwnNote
	}

	ratings := uow.NoteRatingRepository()
	existing, err := ratings.FindOne(ctx, specification.ByRater{NoteID: note.Id, UserID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	sumDelta, countDelta := req.Score, 1
	if existing == nil {
		err = ratings.Create(ctx, &entity.NoteRating{
			Id:        uuid.New(),
			NoteId:    note.Id,
			UserId:    userId,
			Score:     req.Score,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	} else {
		sumDelta, countDelta = req.Score-existing.Score, 0
		existing.Score = req.Score
		existing.UpdatedAt = time.Now()
		err = ratings.Update(ctx, existing)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if sumDelta != 0 || countDelta != 0 {
		if err := uow.NoteRepository().AdjustRating(ctx, note.Id, sumDelta, countDelta); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	note.RatingSum += sumDelta
	note.RatingCount += countDelta

	s.publish(ctx, events.New(events.TypeNoteRated, map[string]interface{}{
		"note_id":  note.Id.String(),
		"owner_id": note.UserId.String(),
		"rater_id": userId.String(),
		"score":    req.Score,
	}))

	return &dto.RateNoteResponse{
		NoteId:        note.Id,
		Score:         req.Score,
		RatingSum:     note.RatingSum,
		RatingCount:   note.RatingCount,
		AverageRating: note.AverageRating(),
	}, nil
}

func (s *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if note == nil || !note.VisibleTo(&userId) {
		return nil, ErrNoteNotFound
	}
	if note.UserId != userId {
		return nil, ErrNotNoteOwner
	}
	return note, nil
}

// publish hands the event to the activity bus. Failures are logged only.
func (s *noteService) publish(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("NOTE", "Failed to publish activity event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n))
	}
	return res
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	res := &dto.NoteResponse{
		Id:            n.Id,
		Title:         n.Title,
		Description:   n.Description,
		Subject:       n.Subject,
		ClassName:     n.ClassName,
		NoteType:      string(n.NoteType),
		RatingSum:     n.RatingSum,
		RatingCount:   n.RatingCount,
		AverageRating: n.AverageRating(),
		UserId:        n.UserId,
		IsPublic:      n.IsPublic,
		FileUrl:       n.FileUrl,
		FileName:      n.FileName,
		FileSize:      n.FileSize,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
	if n.Owner != nil {
		res.Owner = &dto.NoteOwnerResponse{
			Id:       n.Owner.Id,
			Username: n.Owner.Username,
			FullName: n.Owner.FullName,
		}
	}
	return res
}
