package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cloud-wave-best-zizon/catalog-service/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrStoreCorrupt marks a catalog file that exists but cannot be
	// parsed. It is never masked by discarding the file.
	ErrStoreCorrupt = errors.New("catalog store corrupt")
	// ErrStoreIO marks a failed flush. The in-memory state is rolled
	// back so the failed write is not observable afterwards.
	ErrStoreIO = errors.New("catalog store io failure")
)

// ProductRepository owns the durable catalog: an ordered JSON array in a
// single file, mirrored in memory. Writers are serialized; each mutation
// flushes the full set to a temp file and renames it into place before
// the change becomes visible, so readers never see a half-written set
// and a crash after a successful call loses nothing.
type ProductRepository struct {
	mu    sync.RWMutex
	path  string
	items []domain.Product
	index map[string]int
}

// NewProductRepository loads the catalog at path. A missing file is an
// empty catalog; an unreadable or unparseable file is an error.
func NewProductRepository(path string) (*ProductRepository, error) {
	r := &ProductRepository{
		path:  path,
		index: make(map[string]int),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProductRepository) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", ErrStoreIO, r.path, err)
	}
	if len(b) == 0 {
		return nil
	}
	var items []domain.Product
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStoreCorrupt, r.path, err)
	}
	index := make(map[string]int, len(items))
	for i, p := range items {
		if _, ok := index[p.ID]; ok {
			return fmt.Errorf("%w: %s: duplicate id %s", ErrStoreCorrupt, r.path, p.ID)
		}
		index[p.ID] = i
	}
	r.items = items
	r.index = index
	return nil
}

// flush writes the full ordered set durably. The temp-file rename makes
// the swap all-or-nothing on the same filesystem.
func (r *ProductRepository) flush(items []domain.Product) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	return nil
}

func (r *ProductRepository) commit(items []domain.Product) error {
	if err := r.flush(items); err != nil {
		return err
	}
	index := make(map[string]int, len(items))
	for i, p := range items {
		index[p.ID] = i
	}
	r.items = items
	r.index = index
	return nil
}

// GetAll returns a snapshot copy of the catalog in insertion order.
func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return r.items[i], nil
}

// Insert appends the record and flushes. The caller assigns the ID.
func (r *ProductRepository) Insert(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[p.ID]; ok {
		return domain.Product{}, fmt.Errorf("duplicate product id %s", p.ID)
	}
	next := make([]domain.Product, len(r.items), len(r.items)+1)
	copy(next, r.items)
	next = append(next, p)
	if err := r.commit(next); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Replace overwrites the record at id, keeping its position.
func (r *ProductRepository) Replace(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	p.ID = id
	next := make([]domain.Product, len(r.items))
	copy(next, r.items)
	next[i] = p
	if err := r.commit(next); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return ErrProductNotFound
	}
	next := make([]domain.Product, 0, len(r.items)-1)
	next = append(next, r.items[:i]...)
	next = append(next, r.items[i+1:]...)
	return r.commit(next)
}
