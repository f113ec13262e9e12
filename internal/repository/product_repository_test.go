package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/catalog-service/internal/domain"
)

func newTestRepo(t *testing.T) (*ProductRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	r, err := NewProductRepository(path)
	if err != nil {
		t.Fatalf("NewProductRepository failed: %v", err)
	}
	return r, path
}

func testProduct(id, name string, price float64, stock int) domain.Product {
	now := time.Now().UTC()
	return domain.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		IsActive:  stock > 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewProductRepositoryMissingFile(t *testing.T) {
	r, _ := newTestRepo(t)
	items, err := r.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty catalog, got %d items", len(items))
	}
}

func TestNewProductRepositoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, err := NewProductRepository(path)
	if !errors.Is(err, ErrStoreCorrupt) {
		t.Fatalf("expected ErrStoreCorrupt, got %v", err)
	}
}

func TestNewProductRepositoryDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	data := `[{"id":"a","name":"One"},{"id":"a","name":"Two"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_, err := NewProductRepository(path)
	if !errors.Is(err, ErrStoreCorrupt) {
		t.Fatalf("expected ErrStoreCorrupt, got %v", err)
	}
}

func TestInsertGetReplaceDelete(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	p := testProduct("p1", "Laptop", 999.99, 3)
	if _, err := r.Insert(ctx, p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := r.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Laptop" || got.Price != 999.99 {
		t.Fatalf("unexpected record: %+v", got)
	}

	p.Price = 899
	if _, err := r.Replace(ctx, "p1", p); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	got, err = r.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Price != 899 {
		t.Fatalf("expected price 899, got %v", got.Price)
	}

	if err := r.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := r.GetByID(ctx, "p1"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestNotFoundPaths(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := r.GetByID(ctx, "nope"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("get: expected ErrProductNotFound, got %v", err)
	}
	if _, err := r.Replace(ctx, "nope", testProduct("nope", "Ghost", 1, 1)); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("replace: expected ErrProductNotFound, got %v", err)
	}
	if err := r.Delete(ctx, "nope"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("delete: expected ErrProductNotFound, got %v", err)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		if _, err := r.Insert(ctx, testProduct(id, "Product "+id, 1, 1)); err != nil {
			t.Fatalf("insert %s failed: %v", id, err)
		}
	}

	items, err := r.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	for i, id := range ids {
		if items[i].ID != id {
			t.Fatalf("expected order %v, got %+v", ids, items)
		}
	}

	// replace keeps the record's position
	if _, err := r.Replace(ctx, "a", testProduct("a", "Renamed", 2, 2)); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	items, _ = r.GetAll(ctx)
	if items[1].ID != "a" || items[1].Name != "Renamed" {
		t.Fatalf("replace moved record: %+v", items)
	}
}

func TestRoundTripReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	r, err := NewProductRepository(path)
	if err != nil {
		t.Fatalf("NewProductRepository failed: %v", err)
	}
	ctx := context.Background()

	discount := 12.5
	p := testProduct("p1", "Laptop", 999.99, 3)
	p.DiscountPercent = &discount
	stored, err := r.Insert(ctx, p)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	reloaded, err := NewProductRepository(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := reloaded.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get after reload failed: %v", err)
	}

	if got.ID != stored.ID || got.Name != stored.Name || got.Price != stored.Price ||
		got.Stock != stored.Stock || got.IsActive != stored.IsActive {
		t.Fatalf("reloaded record differs: %+v vs %+v", got, stored)
	}
	if got.DiscountPercent == nil || *got.DiscountPercent != discount {
		t.Fatalf("discount lost on reload: %+v", got.DiscountPercent)
	}
	if !got.CreatedAt.Equal(stored.CreatedAt) || !got.UpdatedAt.Equal(stored.UpdatedAt) {
		t.Fatalf("timestamps differ after reload")
	}
}

func TestDeleteIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	r, err := NewProductRepository(path)
	if err != nil {
		t.Fatalf("NewProductRepository failed: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if _, err := r.Insert(ctx, testProduct(id, "Product "+id, 1, 1)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if err := r.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	reloaded, err := NewProductRepository(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	items, _ := reloaded.GetAll(ctx)
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("expected only p2 after reload, got %+v", items)
	}
}

func TestFailedFlushLeavesStateUnchanged(t *testing.T) {
	r, path := newTestRepo(t)
	ctx := context.Background()

	if _, err := r.Insert(ctx, testProduct("p1", "Laptop", 1, 1)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Replace the store file with a directory so the rename fails.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	_, err := r.Insert(ctx, testProduct("p2", "Mouse", 1, 1))
	if !errors.Is(err, ErrStoreIO) {
		t.Fatalf("expected ErrStoreIO, got %v", err)
	}

	items, _ := r.GetAll(ctx)
	if len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("failed flush mutated in-memory state: %+v", items)
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := r.Insert(ctx, testProduct("p1", "Laptop", 1, 1)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	items, _ := r.GetAll(ctx)
	items[0].Name = "Mutated"

	got, _ := r.GetByID(ctx, "p1")
	if got.Name != "Laptop" {
		t.Fatalf("snapshot mutation leaked into store: %+v", got)
	}
}
