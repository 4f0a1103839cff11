package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
)

// MemoryRepository keeps projects in process memory. Ids start at 1 and are
// never reused.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[int]domain.Project
	nextID   int
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		projects: make(map[int]domain.Project),
		nextID:   1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStoreError("create", 0, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.projects[stored.ID] = stored

	out := stored.Clone()
	return &out, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStoreError("list", 0, err)
	}

	r.mu.RLock()
	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p.Clone())
	}
	r.mu.RUnlock()

	sortByName(out)
	return out, nil
}

func (r *MemoryRepository) FetchByID(ctx context.Context, id int) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStoreError("fetch", id, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p domain.Project) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreError("update", p.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; !ok {
		return domain.NewStoreError("update", p.ID, domain.ErrNotFound)
	}
	r.projects[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreError("delete", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return domain.NewStoreError("delete", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

// sortByName orders projects the way the SQL backend does: by name in byte
// order (COLLATE "C") with unnamed projects last, then by id.
func sortByName(ps []domain.Project) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i].Name, ps[j].Name
		switch {
		case a == nil && b == nil:
			return ps[i].ID < ps[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		}
		return ps[i].ID < ps[j].ID
	})
}
