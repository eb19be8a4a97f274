package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context) ([]response.ProductResponse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]response.ProductResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error)
	// Update and Delete are restricted to the owning user; a product that is
	// absent or owned by someone else surfaces as ErrProductNotFound either
	// way.
	Update(ctx context.Context, productID, ownerID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, productID, ownerID uuid.UUID) error
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) List(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}

	return toProductResponses(products), nil
}

func (s *productService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to list owner products",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("list owner products: %w", err)
	}

	return toProductResponses(products), nil
}

func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("name", product.Name),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, productID, ownerID uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByIDAndOwner(ctx, productID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("update product %s: %w", productID.String(), ErrProductNotFound)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	if req.Image != "" {
		product.Image = req.Image
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.String("product_id", productID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, productID, ownerID uuid.UUID) error {
	product, err := s.repo.Product.FindByIDAndOwner(ctx, productID, ownerID)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("delete product %s: %w", productID.String(), ErrProductNotFound)
	}

	if err := s.repo.Product.Delete(ctx, productID); err != nil {
		s.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return fmt.Errorf("delete product: %w", err)
	}

	s.log.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}

func toProductResponses(products []*entity.Product) []response.ProductResponse {
	responses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = response.ProductToResponse(product)
	}
	return responses
}
