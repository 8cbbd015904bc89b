package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"upcyclehub/internal/usecase"
	"upcyclehub/pkg/errors"
	"upcyclehub/pkg/response"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type createProductRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int64  `json:"price" validate:"required,min=1"`
	Category    string `json:"category" validate:"required"`
	Condition   string `json:"condition" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

type updateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"omitempty,min=1"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	Status      string `json:"status" validate:"omitempty,oneof=active sold archived"`
}

type addImageRequest struct {
	URL    string `json:"url" validate:"required,url"`
	IsMain bool   `json:"isMain"`
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid "+name, err)
	}
	return id, nil
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUseCase.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	product, images, err := h.productUseCase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product": product,
		"images":  images,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(int64)

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), sellerID, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), userID, id, usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}

func (h *ProductHandler) AddProductImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req addImageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	image, err := h.productUseCase.AddProductImage(c.Request().Context(), userID, id, req.URL, req.IsMain)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, image)
}

func (h *ProductHandler) ListProductImages(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	images, err := h.productUseCase.ListProductImages(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, images)
}
