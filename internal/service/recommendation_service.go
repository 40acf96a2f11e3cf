package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"notehub-be/internal/dto"
	"notehub-be/internal/entity"
	"notehub-be/internal/metrics"
	"notehub-be/internal/pkg/logger"
	"notehub-be/internal/repository/specification"
	"notehub-be/internal/repository/unitofwork"
	"notehub-be/pkg/apperror"
	"notehub-be/pkg/llm"
	"notehub-be/pkg/recommend"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	SameSchoolCandidateLimit  = 30
	OtherSchoolCandidateLimit = 20
	CandidateLimit            = SameSchoolCandidateLimit + OtherSchoolCandidateLimit
)

type IRecommendationService interface {
	Recommend(ctx context.Context, userId *uuid.UUID, req *dto.RecommendNotesRequest) (*dto.RecommendNotesResponse, error)
}

type RecommendationConfig struct {
	Provider    string
	Model       string
	Temperature float64
}

type recommendationService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	cfg         RecommendationConfig
	logger      logger.ILogger
}

// NewRecommendationService accepts a nil provider; every ranking call then
// fails with ErrAINotConfigured instead of refusing to boot.
func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	cfg RecommendationConfig,
	logger logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userId *uuid.UUID, req *dto.RecommendNotesRequest) (*dto.RecommendNotesResponse, error) {
	query := recommend.Query{
		Lesson:    strings.TrimSpace(req.Lesson),
		Subject:   trimmed(req.Subject),
		ClassName: trimmed(req.ClassName),
	}
	if query.Lesson == "" {
		metrics.RecordRecommendation(metrics.OutcomeInvalidRequest, 0, 0)
		return nil, ErrLessonRequired
	}

	if s.llmProvider == nil {
		metrics.RecordRecommendation(metrics.OutcomeFailed, 0, 0)
		return nil, ErrAINotConfigured
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidates, err := s.selectCandidates(ctx, uow, userId, query)
	if err != nil {
		metrics.RecordRecommendation(metrics.OutcomeFailed, 0, 0)
		return nil, apperror.Internal(err)
	}
	if len(candidates) == 0 {
		metrics.RecordRecommendation(metrics.OutcomeNoCandidates, 0, 0)
		return &dto.RecommendNotesResponse{Recommendations: []*dto.NoteResponse{}}, nil
	}

	ranking, err := s.rank(ctx, query, candidates)
	if err != nil {
		metrics.RecordRecommendation(outcomeOf(err), len(candidates), 0)
		return nil, err
	}

	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c.Id.String()] = struct{}{}
	}
	ranking = ranking.Restrict(allowed)

	notes, err := s.hydrate(ctx, uow, ranking)
	if err != nil {
		metrics.RecordRecommendation(metrics.OutcomeFailed, len(candidates), 0)
		return nil, apperror.Internal(err)
	}

	res := toNoteResponses(notes)

	metrics.RecordRecommendation(metrics.OutcomeServed, len(candidates), len(res))
	s.logger.Info("RECOMMEND", "Recommendations served", map[string]interface{}{
		"lesson":     query.Lesson,
		"candidates": len(candidates),
		"ranked":     ranking.Len(),
		"returned":   len(res),
	})

	return &dto.RecommendNotesResponse{Recommendations: res}, nil
}

// selectCandidates builds the pool the model ranks. Callers with a school get
// their school's most rated notes first, then other schools'.
func (s *recommendationService) selectCandidates(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID, q recommend.Query) ([]*entity.Note, error) {
	schoolId, err := s.resolveSchool(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	base := []specification.Specification{specification.PublicNotes{}}
	if q.Subject != "" {
		base = append(base, specification.BySubject{Subject: q.Subject})
	}
	if q.ClassName != "" {
		base = append(base, specification.ByClassName{ClassName: q.ClassName})
	}

	notes := uow.NoteRepository()

	if schoolId == nil {
		return notes.FindAll(ctx, withSpecs(base,
			specification.MostRated{},
			specification.Pagination{Limit: CandidateLimit},
		)...)
	}

	var sameSchool, otherSchool []*entity.Note
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sameSchool, err = notes.FindAll(gctx, withSpecs(base,
			specification.OwnerInSchool{SchoolID: *schoolId},
			specification.MostRated{},
			specification.Pagination{Limit: SameSchoolCandidateLimit},
		)...)
		return err
	})
	g.Go(func() error {
		var err error
		otherSchool, err = notes.FindAll(gctx, withSpecs(base,
			specification.OwnerOutsideSchool{SchoolID: *schoolId},
			specification.MostRated{},
			specification.Pagination{Limit: OtherSchoolCandidateLimit},
		)...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return recommend.Merge(CandidateLimit, noteKey, sameSchool, otherSchool), nil
}

func (s *recommendationService) resolveSchool(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID) (*uuid.UUID, error) {
	if userId == nil {
		return nil, nil
	}
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: *userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return profile.SchoolId, nil
}

func (s *recommendationService) rank(ctx context.Context, q recommend.Query, notes []*entity.Note) (recommend.Ranking, error) {
	candidates := make([]recommend.Candidate, len(notes))
	for i, n := range notes {
		candidates[i] = toCandidate(n)
	}

	opts := []llm.Option{llm.WithTemperature(s.cfg.Temperature)}
	if s.cfg.Model != "" {
		opts = append(opts, llm.WithModel(s.cfg.Model))
	}

	start := time.Now()
	content, err := s.llmProvider.Chat(ctx, recommend.BuildMessages(q, candidates), opts...)
	metrics.ObserveCompletion(s.cfg.Provider, err, time.Since(start))
	if err != nil {
		return recommend.Ranking{}, s.completionError(err)
	}

	ranking, err := recommend.ParseRanking(content)
	if err != nil {
		s.logger.Warn("RECOMMEND", "Unparsable ranking", map[string]interface{}{
			"content": content,
		})
		return recommend.Ranking{}, ErrAIInvalidResponse
	}
	return ranking, nil
}

func (s *recommendationService) completionError(err error) error {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return ErrAIRateLimited
	case errors.Is(err, llm.ErrQuotaExceeded):
		return ErrAIQuotaExceeded
	case errors.Is(err, llm.ErrEmptyResponse):
		return ErrAINoResponse
	}
	s.logger.Error("RECOMMEND", "Completion call failed", map[string]interface{}{
		"provider": s.cfg.Provider,
		"error":    err,
	})
	return ErrAIGateway
}

func (s *recommendationService) hydrate(ctx context.Context, uow unitofwork.UnitOfWork, ranking recommend.Ranking) ([]*entity.Note, error) {
	if ranking.Len() == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, ranking.Len())
	for _, raw := range ranking.IDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.WithOwner{},
	)
	if err != nil {
		return nil, err
	}
	return recommend.OrderByRanking(ranking.IDs, notes, noteKey), nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrAIRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, ErrAIQuotaExceeded):
		return metrics.OutcomeQuotaExceeded
	case errors.Is(err, ErrAIInvalidResponse):
		return metrics.OutcomeBadAIResponse
	default:
		return metrics.OutcomeFailed
	}
}

func noteKey(n *entity.Note) string { return n.Id.String() }

func toCandidate(n *entity.Note) recommend.Candidate {
	c := recommend.Candidate{
		ID:          n.Id.String(),
		Title:       n.Title,
		Subject:     n.Subject,
		ClassName:   n.ClassName,
		NoteType:    string(n.NoteType),
		RatingSum:   n.RatingSum,
		RatingCount: n.RatingCount,
	}
	if n.Description != nil {
		c.Description = *n.Description
	}
	return c
}

func withSpecs(base []specification.Specification, extra ...specification.Specification) []specification.Specification {
	out := make([]specification.Specification, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
