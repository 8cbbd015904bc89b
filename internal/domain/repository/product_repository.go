package repository

import (
	"context"

	"upcyclehub/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, category string) ([]*entity.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error

	// Image methods
	CreateImage(ctx context.Context, image *entity.ProductImage) error
	ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error)
}
