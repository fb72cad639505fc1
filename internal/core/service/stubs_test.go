package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	updates   int   // number of UpdateScore calls that reached the store
	listCalls int   // number of List calls
	listErr   error // if set, List returns this error
	afterList func() // if set, runs once List has read its snapshot
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("id-%d", r.nextID)
	r.byID[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if r.afterList != nil {
		r.afterList()
	}
	return out, nil
}

func (r *stubUserRepo) UpdateScore(_ context.Context, id string, update domain.ScoreUpdate) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.updates++
	updated := update.Apply(*u)
	r.byID[id] = &updated
	return nil
}

type stubHistoryRepo struct {
	entries   []*domain.ScoreChange
	insertErr error
	lastLimit int
}

func (r *stubHistoryRepo) Insert(_ context.Context, change *domain.ScoreChange) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	c := *change
	r.entries = append(r.entries, &c)
	return nil
}

func (r *stubHistoryRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.ScoreChange, error) {
	r.lastLimit = limit
	var out []*domain.ScoreChange
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// stubCache mirrors the generation semantics of the Redis cache: a write for
// a generation older than the current one is dropped.
type stubCache struct {
	scores      []ports.ScoreSummary
	set         bool
	gen         int64
	getErr      error
	invalidated int
	staleWrites int
}

func (c *stubCache) GetScores(context.Context) ([]ports.ScoreSummary, int64, bool, error) {
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	return c.scores, c.gen, c.set, nil
}

func (c *stubCache) SetScores(_ context.Context, gen int64, scores []ports.ScoreSummary) error {
	if gen != c.gen {
		c.staleWrites++
		return nil
	}
	c.scores, c.set = scores, true
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.scores, c.set = nil, false
	c.gen++
	c.invalidated++
	return nil
}

type stubPublisher struct {
	published []domain.ScoreChange
}

func (p *stubPublisher) Publish(change domain.ScoreChange) {
	p.published = append(p.published, change)
}

var errStore = errors.New("store unavailable")

func intPtr(v int) *int { return &v }
