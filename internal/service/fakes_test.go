package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"notehub-be/internal/entity"
	"notehub-be/internal/repository/contract"
	"notehub-be/internal/repository/specification"
	"notehub-be/internal/repository/unitofwork"
	"notehub-be/pkg/events"
	"notehub-be/pkg/llm"

	"github.com/google/uuid"
)

// store is a tiny in-memory stand-in for Postgres. It understands the
// specifications the services use.
type store struct {
	mu       sync.Mutex
	notes    []*entity.Note
	profiles map[uuid.UUID]*entity.Profile
	schools  []*entity.School
	ratings  []*entity.NoteRating

	// rowLock stands in for SELECT ... FOR UPDATE on notes.
	rowLock sync.Mutex

	failWith     error
	lockedReads  int
	findAllCalls int
	schoolFinds  int
	began        int
	committed    int
	rolledBack   int
}

func newStore() *store {
	return &store{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (s *store) addSchool(name string) *entity.School {
	school := &entity.School{Id: uuid.New(), Name: name}
	s.schools = append(s.schools, school)
	return school
}

func (s *store) addProfile(username string, school *entity.School) *entity.Profile {
	p := &entity.Profile{Id: uuid.New(), Username: username, FullName: strings.ToUpper(username)}
	if school != nil {
		p.SchoolId = &school.Id
	}
	s.profiles[p.Id] = p
	return p
}

func (s *store) addNote(owner *entity.Profile, title string, ratingCount int) *entity.Note {
	n := &entity.Note{
		Id:          uuid.New(),
		Title:       title,
		Subject:     "Biology",
		ClassName:   "BIO101",
		NoteType:    entity.NoteTypeLecture,
		RatingSum:   ratingCount * 4,
		RatingCount: ratingCount,
		UserId:      owner.Id,
		IsPublic:    true,
	}
	s.notes = append(s.notes, n)
	return n
}

func (s *store) note(id uuid.UUID) *entity.Note {
	for _, n := range s.notes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

func (s *store) schoolOf(userId uuid.UUID) *uuid.UUID {
	if p, ok := s.profiles[userId]; ok {
		return p.SchoolId
	}
	return nil
}

func (s *store) queryNotes(specs []specification.Specification) []*entity.Note {
	out := make([]*entity.Note, 0, len(s.notes))
	for _, n := range s.notes {
		cp := *n
		out = append(out, &cp)
	}

	keep := func(pred func(n *entity.Note) bool) {
		filtered := out[:0]
		for _, n := range out {
			if pred(n) {
				filtered = append(filtered, n)
			}
		}
		out = filtered
	}

	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			keep(func(n *entity.Note) bool { return n.Id == sp.ID })
		case specification.ByIDs:
			ids := make(map[uuid.UUID]bool, len(sp.IDs))
			for _, id := range sp.IDs {
				ids[id] = true
			}
			keep(func(n *entity.Note) bool { return ids[n.Id] })
			// Databases return IN lookups in any order.
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
		case specification.PublicNotes:
			keep(func(n *entity.Note) bool { return n.IsPublic })
		case specification.BySubject:
			keep(func(n *entity.Note) bool { return n.Subject == sp.Subject })
		case specification.ByClassName:
			keep(func(n *entity.Note) bool { return n.ClassName == sp.ClassName })
		case specification.ByNoteType:
			keep(func(n *entity.Note) bool { return string(n.NoteType) == sp.NoteType })
		case specification.NoteOwnedByUser:
			keep(func(n *entity.Note) bool { return n.UserId == sp.UserID })
		case specification.NoteSearchQuery:
			q := strings.ToLower(sp.Query)
			keep(func(n *entity.Note) bool {
				return strings.Contains(strings.ToLower(n.Title), q) ||
					strings.Contains(strings.ToLower(n.ClassName), q) ||
					strings.Contains(strings.ToLower(n.Subject), q)
			})
		case specification.OwnerInSchool:
			keep(func(n *entity.Note) bool {
				school := s.schoolOf(n.UserId)
				return school != nil && *school == sp.SchoolID
			})
		case specification.OwnerOutsideSchool:
			keep(func(n *entity.Note) bool {
				school := s.schoolOf(n.UserId)
				return school != nil && *school != sp.SchoolID
			})
		case specification.MostRated:
			sort.SliceStable(out, func(i, j int) bool { return out[i].RatingCount > out[j].RatingCount })
		case specification.NewestFirst:
			sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		case specification.Pagination:
			if sp.Offset > 0 {
				if sp.Offset >= len(out) {
					out = out[:0]
				} else {
					out = out[sp.Offset:]
				}
			}
			if sp.Limit > 0 && len(out) > sp.Limit {
				out = out[:sp.Limit]
			}
		case specification.WithOwner:
			for _, n := range out {
				if p, ok := s.profiles[n.UserId]; ok {
					owner := *p
					n.Owner = &owner
				}
			}
		}
	}
	return out
}

type fakeFactory struct {
	store *store
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store  *store
	inTx   bool
	locked bool
}

func (u *fakeUnitOfWork) release() {
	if u.locked {
		u.locked = false
		u.store.rowLock.Unlock()
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	u.store.began++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.inTx = false
	u.release()
	u.store.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.inTx = false
	u.release()
	u.store.rolledBack++
	return nil
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepository{store: u.store, uow: u}
}

func (u *fakeUnitOfWork) NoteRatingRepository() contract.NoteRatingRepository {
	return &fakeNoteRatingRepository{store: u.store}
}

func (u *fakeUnitOfWork) ProfileRepository() contract.ProfileRepository {
	return &fakeProfileRepository{store: u.store}
}

func (u *fakeUnitOfWork) SchoolRepository() contract.SchoolRepository {
	return &fakeSchoolRepository{store: u.store}
}

type fakeNoteRepository struct {
	store *store
	uow   *fakeUnitOfWork
}

func (r *fakeNoteRepository) lockIfRequested(specs []specification.Specification) {
	for _, spec := range specs {
		if _, ok := spec.(specification.ForUpdate); ok && r.uow.inTx && !r.uow.locked {
			r.store.rowLock.Lock()
			r.uow.locked = true
			r.store.mu.Lock()
			r.store.lockedReads++
			r.store.mu.Unlock()
			return
		}
	}
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return r.store.failWith
	}
	cp := *note
	r.store.notes = append(r.store.notes, &cp)
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing := r.store.note(note.Id)
	if existing == nil {
		return errors.New("record not found")
	}
	sum, count := existing.RatingSum, existing.RatingCount
	*existing = *note
	existing.RatingSum, existing.RatingCount = sum, count
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, n := range r.store.notes {
		if n.Id == id {
			r.store.notes = append(r.store.notes[:i], r.store.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.lockIfRequested(specs)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	found := r.store.queryNotes(specs)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.findAllCalls++
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	return r.store.queryNotes(specs), nil
}

func (r *fakeNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return 0, r.store.failWith
	}
	return int64(len(r.store.queryNotes(specs))), nil
}

func (r *fakeNoteRepository) AdjustRating(ctx context.Context, id uuid.UUID, sumDelta, countDelta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := r.store.note(id)
	if n == nil {
		return errors.New("record not found")
	}
	n.RatingSum += sumDelta
	n.RatingCount += countDelta
	return nil
}

type fakeNoteRatingRepository struct {
	store *store
}

func (r *fakeNoteRatingRepository) Create(ctx context.Context, rating *entity.NoteRating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *rating
	r.store.ratings = append(r.store.ratings, &cp)
	return nil
}

func (r *fakeNoteRatingRepository) Update(ctx context.Context, rating *entity.NoteRating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.ratings {
		if existing.Id == rating.Id {
			*existing = *rating
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeNoteRatingRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteRating, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if by, ok := spec.(specification.ByRater); ok {
			for _, rating := range r.store.ratings {
				if rating.NoteId == by.NoteID && rating.UserId == by.UserID {
					cp := *rating
					return &cp, nil
				}
			}
		}
	}
	return nil, nil
}

type fakeProfileRepository struct {
	store *store
}

func (r *fakeProfileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.profiles[profile.Id]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	cp := *profile
	r.store.profiles[profile.Id] = &cp
	return nil
}

func (r *fakeProfileRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if p, ok := r.store.profiles[sp.ID]; ok {
				return r.withSchool(p), nil
			}
		case specification.ByUsername:
			for _, p := range r.store.profiles {
				if p.Username == sp.Username {
					return r.withSchool(p), nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeProfileRepository) withSchool(p *entity.Profile) *entity.Profile {
	cp := *p
	if cp.SchoolId != nil {
		for _, s := range r.store.schools {
			if s.Id == *cp.SchoolId {
				school := *s
				cp.School = &school
			}
		}
	}
	return &cp
}

type fakeSchoolRepository struct {
	store *store
}

func (r *fakeSchoolRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.School, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if by, ok := spec.(specification.ByID); ok {
			for _, s := range r.store.schools {
				if s.Id == by.ID {
					cp := *s
					return &cp, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeSchoolRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.School, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.schoolFinds++
	out := make([]*entity.School, len(r.store.schools))
	copy(out, r.store.schools)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeLLM struct {
	mu      sync.Mutex
	content string
	err     error
	calls   int
	history []llm.Message
	options llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.history = history
	f.options = llm.Options{}
	for _, opt := range options {
		opt(&f.options)
	}
	return f.content, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (f *fakeLLM) userPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.history {
		if m.Role == llm.RoleUser {
			return m.Content
		}
	}
	return ""
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
