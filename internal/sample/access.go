package sample

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrPersonNotFound is returned when no person matches a lookup
var ErrPersonNotFound = errors.New("person not found")

// PersonAccess looks up and updates people
type PersonAccess interface {
	Person(ctx context.Context, id int64) (Person, error)
	PersonByName(ctx context.Context, name string) (Person, error)
	PersonByAttributes(ctx context.Context, attrs []string) (Person, error)
	PersonInMood(ctx context.Context, mood string) (Person, error)
	People(ctx context.Context) ([]Person, error)
	Update(ctx context.Context, p Person) (Person, error)
	PossibleDetails(ctx context.Context, gender Gender) ([]string, error)
}

// DefaultPersonID is the id of the person every store starts with
const DefaultPersonID int64 = 1234

var (
	maleDetails   = []string{"beard", "afterShave", "noseHairTrimmer"}
	femaleDetails = []string{"perfume", "lipstick", "makeupRemover"}
)

// MemoryAccess is an in-memory PersonAccess. Attributes and moods are
// not tracked per person, so those lookups return the person with the
// lowest id.
type MemoryAccess struct {
	mu     sync.RWMutex
	people map[int64]Person
}

// NewMemoryAccess creates a store holding Bilbo Baggins
func NewMemoryAccess() *MemoryAccess {
	return &MemoryAccess{
		people: map[int64]Person{
			DefaultPersonID: {
				ID:        DefaultPersonID,
				Firstname: "Bilbo",
				Lastname:  "Baggins",
				Gender:    GenderMale,
				Sports:    []Sport{SportStealing, SportSmoking, SportDragonQuest},
			},
		},
	}
}

// Person returns the person with the given id
func (a *MemoryAccess) Person(ctx context.Context, id int64) (Person, error) {
	if err := ctx.Err(); err != nil {
		return Person{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	p, ok := a.people[id]
	if !ok {
		return Person{}, fmt.Errorf("person %d: %w", id, ErrPersonNotFound)
	}
	return p.clone(), nil
}

// PersonByName returns the first person whose first name, last name or
// full name equals name, ignoring case
func (a *MemoryAccess) PersonByName(ctx context.Context, name string) (Person, error) {
	if err := ctx.Err(); err != nil {
		return Person{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, p := range a.sorted() {
		full := p.Firstname + " " + p.Lastname
		if strings.EqualFold(p.Firstname, name) || strings.EqualFold(p.Lastname, name) || strings.EqualFold(full, name) {
			return p.clone(), nil
		}
	}
	return Person{}, fmt.Errorf("person named %q: %w", name, ErrPersonNotFound)
}

// PersonByAttributes returns a person having attrs
func (a *MemoryAccess) PersonByAttributes(ctx context.Context, attrs []string) (Person, error) {
	return a.first(ctx)
}

// PersonInMood returns a person in the given mood
func (a *MemoryAccess) PersonInMood(ctx context.Context, mood string) (Person, error) {
	return a.first(ctx)
}

// People returns everyone ordered by id
func (a *MemoryAccess) People(ctx context.Context) ([]Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	people := a.sorted()
	for i := range people {
		people[i] = people[i].clone()
	}
	return people, nil
}

// Update replaces the stored person with the same id
func (a *MemoryAccess) Update(ctx context.Context, p Person) (Person, error) {
	if err := ctx.Err(); err != nil {
		return Person{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.people[p.ID]; !ok {
		return Person{}, fmt.Errorf("person %d: %w", p.ID, ErrPersonNotFound)
	}
	a.people[p.ID] = p.clone()
	return p.clone(), nil
}

// PossibleDetails returns the details that can be shown for a gender
func (a *MemoryAccess) PossibleDetails(ctx context.Context, gender Gender) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if gender == GenderMale {
		return slices.Clone(maleDetails), nil
	}
	return slices.Clone(femaleDetails), nil
}

func (a *MemoryAccess) first(ctx context.Context) (Person, error) {
	if err := ctx.Err(); err != nil {
		return Person{}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	people := a.sorted()
	if len(people) == 0 {
		return Person{}, ErrPersonNotFound
	}
	return people[0].clone(), nil
}

// sorted returns the stored people ordered by id. Callers hold the lock.
func (a *MemoryAccess) sorted() []Person {
	people := make([]Person, 0, len(a.people))
	for _, p := range a.people {
		people = append(people, p)
	}
	slices.SortFunc(people, func(x, y Person) int {
		switch {
		case x.ID < y.ID:
			return -1
		case x.ID > y.ID:
			return 1
		default:
			return 0
		}
	})
	return people
}
