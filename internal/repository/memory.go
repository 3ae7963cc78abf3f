package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ritmodivulga/promo-engine/internal/domain"
)

type memoryState struct {
	clients  map[uuid.UUID]domain.Client
	packages map[uuid.UUID]domain.Package
	videos   map[uuid.UUID]domain.Video
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		clients:  make(map[uuid.UUID]domain.Client, len(s.clients)),
		packages: make(map[uuid.UUID]domain.Package, len(s.packages)),
		videos:   make(map[uuid.UUID]domain.Video, len(s.videos)),
	}
	for k, v := range s.clients {
		out.clients[k] = v
	}
	for k, v := range s.packages {
		out.packages[k] = v
	}
	for k, v := range s.videos {
		out.videos[k] = v
	}
	return out
}

// MemoryStore is a Store kept in process memory. Every call holds a single
// lock, and WithTx holds it for the whole unit of work, restoring the previous
// state when fn fails.
type MemoryStore struct {
	mu    *sync.Mutex
	state **memoryState
	inTx  bool
}

func NewMemoryStore() *MemoryStore {
	st := &memoryState{
		clients:  map[uuid.UUID]domain.Client{},
		packages: map[uuid.UUID]domain.Package{},
		videos:   map[uuid.UUID]domain.Video{},
	}
	return &MemoryStore{mu: &sync.Mutex{}, state: &st}
}

func (m *MemoryStore) Clients() ClientRepository   { return memoryClients{m} }
func (m *MemoryStore) Packages() PackageRepository { return memoryPackages{m} }
func (m *MemoryStore) Videos() VideoRepository     { return memoryVideos{m} }

func (m *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if m.inTx {
		return fn(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := (*m.state).clone()
	if err := fn(&MemoryStore{mu: m.mu, state: m.state, inTx: true}); err != nil {
		*m.state = snapshot
		return err
	}
	return nil
}

// with runs fn under the store lock unless a transaction already holds it.
func (m *MemoryStore) with(fn func(st *memoryState) error) error {
	if !m.inTx {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	return fn(*m.state)
}

type memoryClients struct{ m *MemoryStore }

func (r memoryClients) Create(ctx context.Context, client *domain.Client) error {
	return r.m.with(func(st *memoryState) error {
		if _, ok := st.clients[client.ID]; ok {
			return fmt.Errorf("client %s already exists", client.ID)
		}
		st.clients[client.ID] = *client
		return nil
	})
}

func (r memoryClients) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var out *domain.Client
	err := r.m.with(func(st *memoryState) error {
		c, ok := st.clients[id]
		if !ok {
			return sql.ErrNoRows
		}
		out = &c
		return nil
	})
	return out, err
}

func (r memoryClients) List(ctx context.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	err := r.m.with(func(st *memoryState) error {
		for _, c := range st.clients {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r memoryClients) Update(ctx context.Context, client *domain.Client) error {
	return r.m.with(func(st *memoryState) error {
		c, ok := st.clients[client.ID]
		if !ok {
			return nil
		}
		c.Name = client.Name
		c.AgencyName = client.AgencyName
		c.IsFrequent = client.IsFrequent
		c.UpdatedAt = client.UpdatedAt
		st.clients[client.ID] = c
		return nil
	})
}

func (r memoryClients) Delete(ctx context.Context, id uuid.UUID) error {
	return r.m.with(func(st *memoryState) error {
		delete(st.clients, id)
		return nil
	})
}

type memoryPackages struct{ m *MemoryStore }

func (r memoryPackages) Create(ctx context.Context, pkg *domain.Package) error {
	return r.m.with(func(st *memoryState) error {
		if _, ok := st.packages[pkg.ID]; ok {
			return fmt.Errorf("package %s already exists", pkg.ID)
		}
		st.packages[pkg.ID] = *pkg
		return nil
	})
}

func (r memoryPackages) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	var out *domain.Package
	err := r.m.with(func(st *memoryState) error {
		p, ok := st.packages[id]
		if !ok {
			return sql.ErrNoRows
		}
		out = &p
		return nil
	})
	return out, err
}

// GetForUpdate needs no extra locking: transactions already hold the store lock.
func (r memoryPackages) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return r.GetByID(ctx, id)
}

func (r memoryPackages) List(ctx context.Context, filter domain.PackageFilter) ([]*domain.Package, error) {
	var out []*domain.Package
	err := r.m.with(func(st *memoryState) error {
		for _, p := range st.packages {
			if filter.Type != "" && p.Type != filter.Type {
				continue
			}
			if filter.Status != "" && p.Status != filter.Status {
				continue
			}
			if filter.ClientID.Valid && (!p.ClientID.Valid || p.ClientID.UUID != filter.ClientID.UUID) {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r memoryPackages) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PackageStatus, at time.Time) (bool, error) {
	var updated bool
	err := r.m.with(func(st *memoryState) error {
		p, ok := st.packages[id]
		if !ok || p.Status != from {
			return nil
		}
		p.Status = to
		p.UpdatedAt = at
		st.packages[id] = p
		updated = true
		return nil
	})
	return updated, err
}

func (r memoryPackages) UpdatePaymentFlag(ctx context.Context, id uuid.UUID, field domain.PaymentField, paid bool, at time.Time) error {
	if !field.Valid() {
		return fmt.Errorf("unknown payment field %q", field)
	}
	return r.m.with(func(st *memoryState) error {
		p, ok := st.packages[id]
		if !ok {
			return nil
		}
		p.PaymentStatus.Set(field, paid)
		p.UpdatedAt = at
		st.packages[id] = p
		return nil
	})
}

type memoryVideos struct{ m *MemoryStore }

func (r memoryVideos) CreateBatch(ctx context.Context, videos []*domain.Video) error {
	return r.m.with(func(st *memoryState) error {
		for _, v := range videos {
			if _, ok := st.videos[v.ID]; ok {
				return fmt.Errorf("video %s already exists", v.ID)
			}
		}
		for _, v := range videos {
			st.videos[v.ID] = *v
		}
		return nil
	})
}

func (r memoryVideos) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var out *domain.Video
	err := r.m.with(func(st *memoryState) error {
		v, ok := st.videos[id]
		if !ok {
			return sql.ErrNoRows
		}
		out = &v
		return nil
	})
	return out, err
}

func (r memoryVideos) GetByPackageID(ctx context.Context, packageID uuid.UUID) ([]*domain.Video, error) {
	var out []*domain.Video
	err := r.m.with(func(st *memoryState) error {
		for _, v := range st.videos {
			if v.PackageID == packageID {
				v := v
				out = append(out, &v)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].VideoNumber < out[j].VideoNumber
	})
	return out, err
}

func (r memoryVideos) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.VideoStatus, at time.Time) (bool, error) {
	var updated bool
	err := r.m.with(func(st *memoryState) error {
		v, ok := st.videos[id]
		if !ok || v.Status != from {
			return nil
		}
		v.Status = to
		v.UpdatedAt = at
		st.videos[id] = v
		updated = true
		return nil
	})
	return updated, err
}

func (r memoryVideos) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.m.with(func(st *memoryState) error {
		for _, v := range st.videos {
			p, ok := st.packages[v.PackageID]
			if ok && p.Status == domain.PackageStatusActive && v.Status != domain.VideoStatusEngaged {
				count++
			}
		}
		return nil
	})
	return count, err
}
