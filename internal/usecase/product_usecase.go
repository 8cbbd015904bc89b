package usecase

import (
	"context"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
	"upcyclehub/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	Condition   string
	Location    string
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID int64, input CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Location:    input.Location,
		SellerID:    sellerID,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns the product with its images and counts the view.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, []*entity.ProductImage, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("product: failed to increment views for product %d: %v", id, err)
	}

	images, err := uc.productRepo.ListImages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, images, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, category)
}

func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error) {
	return uc.productRepo.ListBySeller(ctx, sellerID)
}

type UpdateProductInput struct {
	Title       string
	Description string
	Price       int64
	Category    string
	Condition   string
	Location    string
	Status      string
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, userID, productID int64, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, errors.Forbidden("Only the seller can update this product", nil)
	}

	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Condition != "" {
		product.Condition = input.Condition
	}
	if input.Location != "" {
		product.Location = input.Location
	}
	if input.Status != "" {
		product.Status = input.Status
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID, productID int64) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.SellerID != userID {
		return errors.Forbidden("Only the seller can delete this product", nil)
	}
	return uc.productRepo.Delete(ctx, productID)
}

func (uc *ProductUseCase) AddProductImage(ctx context.Context, userID, productID int64, url string, isMain bool) (*entity.ProductImage, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, errors.Forbidden("Only the seller can add images to this product", nil)
	}

	image := &entity.ProductImage{
		ProductID: productID,
		URL:       url,
		IsMain:    isMain,
	}
	if err := uc.productRepo.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (uc *ProductUseCase) ListProductImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.productRepo.ListImages(ctx, productID)
}
