// Package query holds the pure listing pipeline: filter, then sort, then
// paginate, always in that order and always over a snapshot already read
// from the repository. Nothing here touches storage or locks.
package query

import (
	"sort"
	"strings"

	"github.com/cloud-wave-best-zizon/catalog-service/internal/domain"
)

const (
	SortByName  = "name"
	SortByPrice = "price"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// FilterByName keeps products whose name contains substr, compared
// case-insensitively. An empty substr keeps everything.
func FilterByName(items []domain.Product, substr string) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return items
	}
	out := make([]domain.Product, 0, len(items))
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SortBy orders a copy of items by key and direction. The sort is stable
// so ties keep their original relative order, which keeps pagination
// deterministic. An empty key returns items unchanged.
func SortBy(items []domain.Product, key, order string) []domain.Product {
	if key == "" {
		return items
	}
	out := make([]domain.Product, len(items))
	copy(out, items)
	desc := order == OrderDesc
	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Price > out[j].Price
			}
			return out[i].Price < out[j].Price
		})
	}
	return out
}

// Paginate returns the 1-indexed page of size pageSize plus the total
// count before slicing. A page past the end yields an empty slice.
func Paginate(items []domain.Product, page, pageSize int) ([]domain.Product, int) {
	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []domain.Product{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total
}
