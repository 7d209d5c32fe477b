package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"craftmarket/internal/repository"
	"craftmarket/internal/service"
	"craftmarket/internal/storage"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	products service.ProductService
	files    storage.FileStore
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, files storage.FileStore) *ProductHandler {
	return &ProductHandler{products: products, files: files}
}

// CreateProductRequest represents a new listing form.
type CreateProductRequest struct {
	Title       string `form:"title" validate:"required,min=1,max=255"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required"`
	Category    string `form:"category"`
}

// CreateProduct godoc
// @Summary Create a listing
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price formData string true "Price"
// @Param category formData string false "Category"
// @Param images formData file false "Up to 5 images"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	req := CreateProductRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(err)
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	images, err := formImages(c, h.files, "images")
	if err != nil {
		return err
	}

	product, err := h.products.Create(c.Request().Context(), ownerID, service.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		Images:      images,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Search in title and description"
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.products.List(c.Request().Context(), repository.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct godoc
// @Summary Update a listing
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	// Fields absent from the form keep their current values.
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	var in service.UpdateProductInput
	if v, ok := formField(params, "title"); ok {
		in.Title = &v
	}
	if v, ok := formField(params, "description"); ok {
		in.Description = &v
	}
	if v, ok := formField(params, "category"); ok {
		in.Category = &v
	}
	if v, ok := formField(params, "price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil || price.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		in.Price = &price
	}
	if v, ok := formField(params, "is_active"); ok {
		active := v == "true" || v == "1"
		in.IsActive = &active
	}

	images, err := formImages(c, h.files, "images")
	if err != nil {
		return err
	}
	in.Images = images

	product, err := h.products.Update(c.Request().Context(), id, callerID, in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a listing
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.Request().Context(), id, callerID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

func formField(params map[string][]string, key string) (string, bool) {
	vals, ok := params[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
