package catalog

import (
	"context"
)

// Service exposes the read-only catalog the storefront browses.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	ProductCount(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.GetProducts(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *service) ProductCount(ctx context.Context) (int64, error) {
	return s.repo.CountProducts(ctx)
}
