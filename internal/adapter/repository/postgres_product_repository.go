package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) repository.ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = "id, uuid, title, description, price, category, condition, location, seller_id, status, views, created_at"

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.UUID == "" {
		product.UUID = uuid.New().String()
	}
	if product.Status == "" {
		product.Status = "active"
	}
	product.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (uuid, title, description, price, category, condition, location, seller_id, status, views, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10) RETURNING id`,
		product.UUID, product.Title, product.Description, product.Price, product.Category,
		product.Condition, product.Location, product.SellerID, product.Status, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id,
	).Scan(&p.ID, &p.UUID, &p.Title, &p.Description, &p.Price, &p.Category,
		&p.Condition, &p.Location, &p.SellerID, &p.Status, &p.Views, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Product", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get product", err)
	}
	return &p, nil
}

func (r *postgresProductRepository) List(ctx context.Context, category string) ([]*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products ORDER BY created_at DESC"
	args := []interface{}{}
	if category != "" {
		query = "SELECT " + productColumns + " FROM products WHERE category = $1 ORDER BY created_at DESC"
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Internal("Failed to list products", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *postgresProductRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE seller_id = $1 ORDER BY created_at DESC", sellerID)
	if err != nil {
		return nil, errors.Internal("Failed to list products by seller", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.UUID, &p.Title, &p.Description, &p.Price, &p.Category,
			&p.Condition, &p.Location, &p.SellerID, &p.Status, &p.Views, &p.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan product", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate products", err)
	}
	return products, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET title = $1, description = $2, price = $3, category = $4,
		 condition = $5, location = $6, status = $7 WHERE id = $8`,
		product.Title, product.Description, product.Price, product.Category,
		product.Condition, product.Location, product.Status, product.ID)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = $1", id); err != nil {
		return errors.Internal("Failed to delete product images", err)
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE products SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return errors.Internal("Failed to increment product views", err)
	}
	return nil
}

func (r *postgresProductRepository) CreateImage(ctx context.Context, image *entity.ProductImage) error {
	image.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO product_images (product_id, url, is_main, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		image.ProductID, image.URL, image.IsMain, image.CreatedAt,
	).Scan(&image.ID)
	if err != nil {
		return errors.Internal("Failed to create product image", err)
	}
	return nil
}

func (r *postgresProductRepository) ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, url, is_main, created_at FROM product_images WHERE product_id = $1 ORDER BY id", productID)
	if err != nil {
		return nil, errors.Internal("Failed to list product images", err)
	}
	defer rows.Close()

	var images []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsMain, &img.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan product image", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate product images", err)
	}
	return images, nil
}
