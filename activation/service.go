// ABOUTME: Activation service coordinating pipelines over the record store
// ABOUTME: Every mutation loads, transitions, saves and appends an activity entry
package activation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// Service runs activation operations against a store. It is safe for
// concurrent use; mutations are serialised.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID

	mu      sync.Mutex
	entropy io.Reader
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDs replaces uuid.New as the record id source.
func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a service over st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entropy = ulid.Monotonic(rand.New(rand.NewSource(s.now().UnixNano())), 0)
	return s
}

// Store returns the underlying record store.
func (s *Service) Store() *store.Store {
	return s.store
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

// record appends an activity entry. Callers hold s.mu.
func (s *Service) record(ctx context.Context, activationID uuid.UUID, verb string, kind models.Kind, subjectID uuid.UUID, detail string) error {
	at := s.timestamp()
	entry := models.ActivityEntry{
		ID:           ulid.MustNew(ulid.Timestamp(at), s.entropy).String(),
		ActivationID: activationID,
		Verb:         verb,
		Kind:         kind,
		SubjectID:    subjectID,
		Detail:       detail,
		At:           at,
	}
	if err := s.store.Activity.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	s.logger.Debug("activity",
		zap.String("activation_id", activationID.String()),
		zap.String("verb", verb),
		zap.String("kind", string(kind)),
		zap.String("subject_id", subjectID.String()),
		zap.String("detail", detail),
	)
	return nil
}

// Activity returns an activation's activity log, oldest first.
func (s *Service) Activity(ctx context.Context, activationID uuid.UUID) ([]models.ActivityEntry, error) {
	entries, err := s.store.Activity.List(ctx, activationID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func get[T store.Record](ctx context.Context, repo *store.Repository[T], id uuid.UUID) (*T, error) {
	rec, err := repo.Get(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", repo.Kind(), id, err)
	}
	return rec, nil
}

func list[T store.Record](ctx context.Context, repo *store.Repository[T], activationID uuid.UUID) ([]T, error) {
	records, err := repo.List(ctx, activationID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", repo.Kind(), err)
	}
	return records, nil
}

func insert[T store.Record](ctx context.Context, repo *store.Repository[T], rec T) error {
	if err := repo.Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to create %s: %w", repo.Kind(), err)
	}
	return nil
}

func save[T store.Record](ctx context.Context, repo *store.Repository[T], rec T) error {
	if err := repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to update %s: %w", repo.Kind(), err)
	}
	return nil
}

func requireName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required: %w", field, models.ErrInvalidInput)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, models.ErrInvalidInput)...)
}

func transitionError(kind models.Kind, from, to any) error {
	return fmt.Errorf("%s cannot move from %v to %v: %w", kind, from, to, models.ErrInvalidTransition)
}
