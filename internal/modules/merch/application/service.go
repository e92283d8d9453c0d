package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/modules/merch/domain"
)

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      *string `json:"category"`
}

type MerchService struct {
	repo domain.ProductRepository
}

func NewMerchService(repo domain.ProductRepository) *MerchService {
	return &MerchService{repo: repo}
}

func (s *MerchService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 || req.StockQuantity < 0 {
		return nil, domain.ErrValidation
	}

	product := &domain.Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *MerchService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MerchService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}
