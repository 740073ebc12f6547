package service

import (
	"fmt"

	"go-pos-backend/internal/cart"
	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"

	"go.uber.org/zap"
)

type CatalogService interface {
	Add(req *ProductRequest, actor string) (*model.Product, error)
	Update(id uint, req *ProductRequest, actor string) error
	Remove(id uint, actor string) error
	List(category string) ([]model.Product, error)
	Get(id uint) (*model.Product, error)
	ListCategories() ([]string, error)
	Snapshot() (cart.Snapshot, error)
}

type ProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	hub         Publisher
}

func NewCatalogService(productRepo repository.ProductRepository, hub Publisher) CatalogService {
	return &catalogService{productRepo: productRepo, hub: hub}
}

func (s *catalogService) build(req *ProductRequest) (*model.Product, error) {
	if req.Quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}
	p := &model.Product{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: model.NormalizeCategory(req.Category),
	}
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidProduct, validator.Describe(errs))
	}
	return p, nil
}

func (s *catalogService) Add(req *ProductRequest, actor string) (*model.Product, error) {
	p, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(p); err != nil {
		return nil, err
	}

	logger.Get().Info("product added", zap.Uint("product_id", p.ID), zap.String("name", p.Name), zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:    "stock_update",
		Action:  "product_created",
		Data:    p,
		User:    actor,
		Message: fmt.Sprintf("%s created product '%s'", actor, p.Name),
	})
	return p, nil
}

// Update overwrites the product. An unknown id is silently ignored; callers
// needing a not-found signal check with Get first.
func (s *catalogService) Update(id uint, req *ProductRequest, actor string) error {
	p, err := s.build(req)
	if err != nil {
		return err
	}
	p.ID = id
	if err := s.productRepo.Update(p); err != nil {
		return err
	}

	logger.Get().Info("product updated", zap.Uint("product_id", id), zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:    "stock_update",
		Action:  "product_updated",
		Data:    p,
		User:    actor,
		Message: fmt.Sprintf("%s updated product '%s'", actor, p.Name),
	})
	return nil
}

// Remove deletes the product row. History rows that reference it keep their
// product id and render with a placeholder name.
func (s *catalogService) Remove(id uint, actor string) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Get().Info("product removed", zap.Uint("product_id", id), zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:    "stock_update",
		Action:  "product_deleted",
		Data:    map[string]interface{}{"id": id},
		User:    actor,
		Message: fmt.Sprintf("%s removed product #%d", actor, id),
	})
	return nil
}

func (s *catalogService) List(category string) ([]model.Product, error) {
	return s.productRepo.FindAll(category)
}

func (s *catalogService) Get(id uint) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) ListCategories() ([]string, error) {
	return s.productRepo.Categories()
}

func (s *catalogService) Snapshot() (cart.Snapshot, error) {
	products, err := s.productRepo.FindAll("")
	if err != nil {
		return nil, err
	}
	return cart.NewSnapshot(products), nil
}
