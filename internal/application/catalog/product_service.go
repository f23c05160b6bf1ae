package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{productRepo: productRepo, logger: logger}
}

// ListPublic returns the products offered on the storefront. Hidden and
// POS-only products are never included.
func (s *ProductService) ListPublic(ctx context.Context, filter PublicProductFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.List(ctx, catalog.ProductFilter{
		Channel:  catalog.ChannelEcommerce,
		Category: catalog.Category(filter.Category),
		Featured: filter.Featured,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListAdmin returns products for the back-office and the POS screen
func (s *ProductService) ListAdmin(ctx context.Context, filter AdminProductFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.List(ctx, catalog.ProductFilter{
		Channel:       catalog.Channel(filter.Channel),
		Category:      catalog.Category(filter.Category),
		Featured:      filter.Featured,
		IncludeHidden: filter.IncludeHidden,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetByID returns a product, hidden or not
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Create creates a new product. Without channels it is offered everywhere.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	channels := toChannels(req.Channels)
	if req.Channels == nil {
		channels = []catalog.Channel{catalog.ChannelEcommerce, catalog.ChannelPOS}
	}

	product, err := catalog.NewProduct(catalog.NewProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    catalog.Category(req.Category),
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Channels:    channels,
		Seasonal:    req.Seasonal,
		SeasonKey:   req.SeasonKey,
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := catalog.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Seasonal:    req.Seasonal,
		SeasonKey:   req.SeasonKey,
	}
	if req.Category != nil {
		category := catalog.Category(*req.Category)
		patch.Category = &category
	}
	if req.Channels != nil {
		channels := toChannels(*req.Channels)
		patch.Channels = &channels
	}

	if err := product.Update(patch); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Hide removes a product from every channel while keeping its history
func (s *ProductService) Hide(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Hide()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("Product hidden", zap.String("product_id", id.String()))
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product permanently. Past order lines keep their
// name and price snapshots.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx, s.logger).Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
