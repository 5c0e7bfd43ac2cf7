// ABOUTME: Record store built from a pluggable backend and typed repositories
// ABOUTME: Enforces that child records reference an existing activation
package store

import (
	"context"
	"errors"

	"github.com/harperreed/activator/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyExists     = errors.New("record already exists")
	ErrDanglingReference = errors.New("referenced activation does not exist")
)

// Row is one stored record in its encoded form.
type Row struct {
	Kind     models.Kind
	ID       string
	ParentID string
	Data     []byte
	Seq      int64 // insertion order, assigned by the backend
}

// Backend persists rows. Implementations must keep List results in insertion order.
type Backend interface {
	Insert(ctx context.Context, row Row) error
	Update(ctx context.Context, row Row) error
	Get(ctx context.Context, kind models.Kind, id string) (Row, error)
	// List returns all rows of kind, or only those under parentID when it is non-empty.
	List(ctx context.Context, kind models.Kind, parentID string) ([]Row, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
	Close() error
}

// Store groups one repository per record kind over a shared backend.
type Store struct {
	backend Backend

	Activations  *Repository[models.Activation]
	Venues       *Repository[models.Venue]
	BudgetItems  *Repository[models.BudgetItem]
	Products     *Repository[models.Product]
	Stakeholders *Repository[models.Stakeholder]
	Documents    *Repository[models.Document]
	Personnel    *Repository[models.Personnel]
	Leads        *Repository[models.Lead]
	Issues       *Repository[models.Issue]
	RunOfShow    *Repository[models.RunOfShowItem]
	Checklist    *Repository[models.ChecklistItem]
	Media        *Repository[models.MediaItem]
	Reports      *Repository[models.Report]
	Activity     *Repository[models.ActivityEntry]
}

// New wires a repository for every record kind onto backend.
func New(backend Backend) *Store {
	return &Store{
		backend:      backend,
		Activations:  NewRepository[models.Activation](backend, models.KindActivation, ""),
		Venues:       NewRepository[models.Venue](backend, models.KindVenue, models.KindActivation),
		BudgetItems:  NewRepository[models.BudgetItem](backend, models.KindBudgetItem, models.KindActivation),
		Products:     NewRepository[models.Product](backend, models.KindProduct, models.KindActivation),
		Stakeholders: NewRepository[models.Stakeholder](backend, models.KindStakeholder, models.KindActivation),
		Documents:    NewRepository[models.Document](backend, models.KindDocument, models.KindActivation),
		Personnel:    NewRepository[models.Personnel](backend, models.KindPersonnel, models.KindActivation),
		Leads:        NewRepository[models.Lead](backend, models.KindLead, models.KindActivation),
		Issues:       NewRepository[models.Issue](backend, models.KindIssue, models.KindActivation),
		RunOfShow:    NewRepository[models.RunOfShowItem](backend, models.KindRunOfShow, models.KindActivation),
		Checklist:    NewRepository[models.ChecklistItem](backend, models.KindChecklist, models.KindActivation),
		Media:        NewRepository[models.MediaItem](backend, models.KindMedia, models.KindActivation),
		Reports:      NewRepository[models.Report](backend, models.KindReport, models.KindActivation),
		Activity:     NewRepository[models.ActivityEntry](backend, models.KindActivity, models.KindActivation),
	}
}

// NewMemory returns a store over a fresh in-memory backend.
func NewMemory() *Store {
	return New(NewMemoryBackend())
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// ChildKinds lists the kinds that hang off an activation.
var ChildKinds = []models.Kind{
	models.KindVenue,
	models.KindBudgetItem,
	models.KindProduct,
	models.KindStakeholder,
	models.KindDocument,
	models.KindPersonnel,
	models.KindLead,
	models.KindIssue,
	models.KindRunOfShow,
	models.KindChecklist,
	models.KindMedia,
	models.KindReport,
	models.KindActivity,
}

// DeleteActivation removes an activation and every record under it.
func (s *Store) DeleteActivation(ctx context.Context, id string) error {
	for _, kind := range ChildKinds {
		rows, err := s.backend.List(ctx, kind, id)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := s.backend.Delete(ctx, kind, row.ID); err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
		}
	}
	return s.backend.Delete(ctx, models.KindActivation, id)
}

func (s *Store) Close() error {
	return s.backend.Close()
}
