package service

import (
	"context"
	"errors"
	"time"

	"github.com/cloud-wave-best-zizon/catalog-service/internal/domain"
	"github.com/cloud-wave-best-zizon/catalog-service/internal/events"
	"github.com/cloud-wave-best-zizon/catalog-service/internal/query"
	"github.com/cloud-wave-best-zizon/catalog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const defaultPageSize = 10

// EventPublisher announces catalog changes. Publishing failures never
// roll back a write that already flushed.
type EventPublisher interface {
	Publish(event events.ProductEvent) error
}

// CatalogService is the single entry point over the repository, the
// validators and the query pipeline. It keeps no product state of its
// own; every call goes through the repository.
type CatalogService struct {
	repo      *repository.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCatalogService wires the service explicitly. publisher may be nil
// when events are disabled.
func NewCatalogService(repo *repository.ProductRepository, publisher EventPublisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListOptions carries the list query after adapter-side parsing. Page
// and PageSize of 0 mean "use the default".
type ListOptions struct {
	Name     string
	SortBy   string
	Order    string
	Page     int
	PageSize int
}

func (s *CatalogService) publish(event events.ProductEvent) {
	if s.publisher == nil {
		return
	}
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()
	_ = s.publisher.Publish(event)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	candidate, err := domain.ValidateCreate(req)
	if err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	candidate.ID = uuid.New().String()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	stored, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", candidate.ID),
			zap.Error(err))
		return domain.Product{}, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", stored.ID),
		zap.String("name", stored.Name),
		zap.Int("initial_stock", stored.Stock))

	s.publish(events.ProductEvent{
		Type:      events.TypeProductCreated,
		ProductID: stored.ID,
		Name:      stored.Name,
		Price:     stored.Price,
		Stock:     stored.Stock,
		IsActive:  stored.IsActive,
	})

	return stored, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}

func validateListOptions(opts *ListOptions) error {
	var fields []domain.FieldError
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.PageSize == 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Page < 1 {
		fields = append(fields, domain.FieldError{Field: "page", Reason: "must be at least 1"})
	}
	if opts.PageSize < 1 {
		fields = append(fields, domain.FieldError{Field: "page_size", Reason: "must be at least 1"})
	}
	switch opts.SortBy {
	case "", query.SortByName, query.SortByPrice:
	default:
		fields = append(fields, domain.FieldError{Field: "sort_by", Reason: "must be one of: name, price"})
	}
	switch opts.Order {
	case "", query.OrderAsc, query.OrderDesc:
	default:
		fields = append(fields, domain.FieldError{Field: "order", Reason: "must be one of: asc, desc"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ListProducts runs the fixed pipeline filter -> sort -> paginate over a
// fresh repository snapshot.
func (s *CatalogService) ListProducts(ctx context.Context, opts ListOptions) (domain.ProductPage, error) {
	if err := validateListOptions(&opts); err != nil {
		return domain.ProductPage{}, err
	}

	snapshot, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to read catalog", zap.Error(err))
		return domain.ProductPage{}, err
	}

	filtered := query.FilterByName(snapshot, opts.Name)
	sorted := query.SortBy(filtered, opts.SortBy, opts.Order)
	pageItems, total := query.Paginate(sorted, opts.Page, opts.PageSize)

	items := make([]domain.ProductResponse, 0, len(pageItems))
	for _, p := range pageItems {
		items = append(items, domain.ToProductResponse(p))
	}

	return domain.ProductPage{
		Items:      items,
		TotalCount: total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
	}, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch domain.UpdateProductRequest) (domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}

	merged, err := domain.ApplyPatch(existing, patch)
	if err != nil {
		return domain.Product{}, err
	}
	merged.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Replace(ctx, id, merged)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		s.logger.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(err))
		return domain.Product{}, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))

	s.publish(events.ProductEvent{
		Type:      events.TypeProductUpdated,
		ProductID: stored.ID,
		Name:      stored.Name,
		Price:     stored.Price,
		Stock:     stored.Stock,
		IsActive:  stored.IsActive,
	})

	return stored, nil
}

// DeleteProduct removes the record. A second delete of the same id
// reports ErrProductNotFound rather than silently succeeding.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))

	s.publish(events.ProductEvent{
		Type:      events.TypeProductDeleted,
		ProductID: id,
	})

	return nil
}

// DeductStock removes quantity units from a product's stock. Deducting
// to exactly zero deactivates the product.
func (s *CatalogService) DeductStock(ctx context.Context, id string, quantity int) (domain.StockDeductionResponse, error) {
	if quantity < 1 {
		return domain.StockDeductionResponse{}, domain.NewValidationError("quantity", "must be at least 1")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.StockDeductionResponse{}, ErrProductNotFound
		}
		return domain.StockDeductionResponse{}, err
	}

	result := domain.StockDeductionResponse{
		ProductID:     id,
		PreviousStock: existing.Stock,
		Deducted:      quantity,
	}

	if existing.Stock < quantity {
		result.NewStock = existing.Stock
		return result, ErrInsufficientStock
	}

	updated := existing
	updated.Stock -= quantity
	if updated.Stock == 0 {
		updated.IsActive = false
	}
	updated.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Replace(ctx, id, updated)
	if err != nil {
		s.logger.Error("Failed to deduct stock",
			zap.String("product_id", id),
			zap.Error(err))
		return domain.StockDeductionResponse{}, err
	}

	result.NewStock = stored.Stock

	s.logger.Info("Stock deducted",
		zap.String("product_id", id),
		zap.Int("previous_stock", result.PreviousStock),
		zap.Int("deducted", quantity),
		zap.Int("new_stock", result.NewStock))

	s.publish(events.ProductEvent{
		Type:      events.TypeProductUpdated,
		ProductID: stored.ID,
		Name:      stored.Name,
		Price:     stored.Price,
		Stock:     stored.Stock,
		IsActive:  stored.IsActive,
	})

	return result, nil
}
