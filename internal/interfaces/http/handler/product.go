package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/labakery/backend/internal/application/catalog"
	"github.com/labakery/backend/internal/interfaces/http/dto"
)

// ProductHandler handles the storefront catalog and product administration
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListPublic lists products sold online.
// GET /api/products?category=&featured=
func (h *ProductHandler) ListPublic(c *gin.Context) {
	var filter catalogapp.PublicProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err, "fetch products")
		return
	}

	products, err := h.productService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err, "fetch products")
		return
	}
	h.Success(c, products)
}

// ListAdmin lists products for the back-office.
// GET /api/admin/products?channel=&category=&featured=&includeHidden=
func (h *ProductHandler) ListAdmin(c *gin.Context) {
	var filter catalogapp.AdminProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err, "fetch products")
		return
	}

	products, err := h.productService.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err, "fetch products")
		return
	}
	h.Success(c, products)
}

// GetByID returns one product.
// GET /api/admin/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err, "fetch product")
		return
	}
	h.Success(c, product)
}

// Create adds a product.
// POST /api/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "create product")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "create product")
		return
	}
	h.Success(c, product)
}

// Update patches a product; "channels": [] hides it.
// PATCH /api/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "update product")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err, "update product")
		return
	}
	h.Success(c, product)
}

// Hide removes a product from every channel.
// POST /api/admin/products/:id/hide
func (h *ProductHandler) Hide(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.Hide(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err, "hide product")
		return
	}
	h.Success(c, product)
}

// Delete removes a product permanently.
// DELETE /api/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err, "delete product")
		return
	}
	h.Success(c, dto.DeletedResponse{ID: id.String(), Deleted: true})
}

// UploadHandler receives product images
type UploadHandler struct {
	BaseHandler
	uploadService *catalogapp.UploadService
	maxSize       int64
}

// NewUploadHandler creates a new UploadHandler reading at most maxSize bytes per file
func NewUploadHandler(uploadService *catalogapp.UploadService, maxSize int64) *UploadHandler {
	if maxSize <= 0 {
		maxSize = catalogapp.DefaultMaxImageSize
	}
	return &UploadHandler{uploadService: uploadService, maxSize: maxSize}
}

// Upload stores the multipart "file" field.
// POST /api/admin/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		h.BadRequest(c, "Missing file")
		return
	}
	if header.Size > h.maxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	f, err := header.Open()
	if err != nil {
		h.HandleError(c, err, "read upload")
		return
	}
	defer f.Close()

	// One extra byte detects files that lied about their size
	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		h.HandleError(c, err, "read upload")
		return
	}

	resp, err := h.uploadService.UploadProductImage(c.Request.Context(), catalogapp.UploadImageInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err, "upload image")
		return
	}
	h.Success(c, resp)
}
