// Package household coordinates store operations into the views the API
// serves: nested person reads, owner-annotated star charts, calendar entries,
// and configuration-driven seeding.
package household

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fenwick/hearth/internal/apperr"
	"github.com/fenwick/hearth/internal/store"
)

// FamilyMember is one configured member of the household, used to seed the
// store on first run. Children holds first names resolved at seed time.
type FamilyMember struct {
	FirstName string
	LastName  string
	Age       int
	Children  []string
}

// PersonDetail is the full representation of a person: their direct children
// (one level deep, each with their own star charts but no grandchildren) and
// their own star charts.
type PersonDetail struct {
	ID         int64           `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Children   []PersonDetail  `json:"children"`
	StarCharts []StarChartView `json:"star_charts"`
}

// PersonListItem is a structured entry in the administrative listing.
type PersonListItem struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Service coordinates store operations and holds the family seed list.
type Service struct {
	db store.Store

	mu     sync.RWMutex
	family []FamilyMember
}

// NewService creates a new household service.
func NewService(db store.Store, family []FamilyMember) *Service {
	return &Service{db: db, family: family}
}

// SetFamily replaces the family seed list, typically after a config reload.
func (s *Service) SetFamily(family []FamilyMember) {
	s.mu.Lock()
	s.family = family
	s.mu.Unlock()
}

// Family returns a snapshot of the family seed list.
func (s *Service) Family() []FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FamilyMember, len(s.family))
	copy(out, s.family)
	return out
}

// CreatePerson inserts a person and returns the assigned id.
func (s *Service) CreatePerson(_ context.Context, firstName, lastName string) (int64, error) {
	return s.db.CreatePerson(firstName, lastName)
}

// GetPerson looks a person up by first name and populates their direct
// children and star charts. Children carry their own charts; their children
// lists stay empty, this is not a recursive tree fetch.
func (s *Service) GetPerson(_ context.Context, firstName string) (*PersonDetail, error) {
	p, err := s.db.GetPersonByFirstName(firstName)
	if err != nil {
		return nil, err
	}

	kids, err := s.db.ChildrenOf(p.ID)
	if err != nil {
		return nil, err
	}
	children := make([]PersonDetail, 0, len(kids))
	for _, kid := range kids {
		charts, err := s.chartViewsFor(kid)
		if err != nil {
			return nil, err
		}
		children = append(children, PersonDetail{
			ID:         kid.ID,
			FirstName:  kid.FirstName,
			LastName:   kid.LastName,
			Children:   []PersonDetail{},
			StarCharts: charts,
		})
	}

	charts, err := s.chartViewsFor(*p)
	if err != nil {
		return nil, err
	}

	return &PersonDetail{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Children:   children,
		StarCharts: charts,
	}, nil
}

// ListPeopleNames returns every person formatted as "First Last".
func (s *Service) ListPeopleNames(_ context.Context) ([]string, error) {
	people, err := s.db.ListPeople()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = fmt.Sprintf("%s %s", p.FirstName, p.LastName)
	}
	return names, nil
}

// ListPeople returns every person as a structured listing entry.
func (s *Service) ListPeople(_ context.Context) ([]PersonListItem, error) {
	people, err := s.db.ListPeople()
	if err != nil {
		return nil, err
	}
	items := make([]PersonListItem, len(people))
	for i, p := range people {
		items[i] = PersonListItem{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
	}
	return items, nil
}

// DeletePerson removes a person together with their star charts and links.
func (s *Service) DeletePerson(_ context.Context, id int64) error {
	return s.db.DeletePerson(id)
}

// IsInitialized reports whether the store already holds any people.
func (s *Service) IsInitialized(_ context.Context) (bool, error) {
	return s.db.IsInitialized()
}

// Initialize seeds the store from the family configuration. The first pass
// inserts every member as a person; the second resolves each declared child
// by first name and inserts the link when missing. Names that resolve to no
// person are skipped silently, an unresolvable parent skips their whole
// children list.
func (s *Service) Initialize(_ context.Context, logger *slog.Logger) error {
	family := s.Family()

	for _, m := range family {
		if _, err := s.db.CreatePerson(m.FirstName, m.LastName); err != nil {
			return fmt.Errorf("seed person %q: %w", m.FirstName, err)
		}
	}

	for _, m := range family {
		if len(m.Children) == 0 {
			continue
		}
		parent, err := s.db.GetPersonByFirstName(m.FirstName)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("seed resolve parent %q: %w", m.FirstName, err)
			}
			logger.Warn("seed: parent not found, skipping children",
				slog.String("first_name", m.FirstName))
			continue
		}
		for _, childName := range m.Children {
			child, err := s.db.GetPersonByFirstName(childName)
			if err != nil {
				if !errors.Is(err, apperr.ErrNotFound) {
					return fmt.Errorf("seed resolve child %q: %w", childName, err)
				}
				logger.Warn("seed: child not found, skipping",
					slog.String("parent", m.FirstName),
					slog.String("child", childName))
				continue
			}
			linked, err := s.db.HasParentChild(parent.ID, child.ID)
			if err != nil {
				return fmt.Errorf("seed link check: %w", err)
			}
			if linked {
				continue
			}
			if err := s.db.AddParentChild(parent.ID, child.ID); err != nil {
				return fmt.Errorf("seed link %d->%d: %w", parent.ID, child.ID, err)
			}
		}
	}

	return nil
}
