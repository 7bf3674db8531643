package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/services"
	"github.com/yungbote/storefront-backend/internal/types"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := ch.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "categories_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"categories": categories})
}

func (ch *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category := &types.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	created, err := ch.catalogService.CreateCategory(c.Request.Context(), category)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "category_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"category": created})
}

func (ch *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category := &types.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	updated, err := ch.catalogService.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "category_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"category": updated})
}

func (ch *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		RespondError(c, http.StatusBadRequest, "category_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": categoryID})
}

func (ch *CatalogHandler) ListProducts(c *gin.Context) {
	filter := repos.ProductFilter{
		Search:     c.Query("q"),
		Sort:       c.Query("sort"),
		ActiveOnly: true,
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
			return
		}
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	page, err := ch.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "products_list_failed", err)
		return
	}
	RespondOK(c, page)
}

func (ch *CatalogHandler) GetProduct(c *gin.Context) {
	raw := c.Param("id")
	if productID, err := uuid.Parse(raw); err == nil {
		product, pErr := ch.catalogService.GetProduct(c.Request.Context(), productID)
		if pErr != nil {
			RespondError(c, http.StatusInternalServerError, "product_fetch_failed", pErr)
			return
		}
		if product == nil {
			RespondError(c, http.StatusNotFound, "product_not_found", nil)
			return
		}
		RespondOK(c, gin.H{"product": product})
		return
	}
	// Non-uuid path segments are treated as slugs.
	product, err := ch.catalogService.GetProductBySlug(c.Request.Context(), raw)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "product_fetch_failed", err)
		return
	}
	if product == nil {
		RespondError(c, http.StatusNotFound, "product_not_found", nil)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

type productRequest struct {
	CategoryID  *uuid.UUID     `json:"category_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       int64          `json:"price"`
	ImageURL    string         `json:"image_url"`
	Images      datatypes.JSON `json:"images"`
	Stock       int            `json:"stock"`
	Attributes  datatypes.JSON `json:"attributes"`
	Active      *bool          `json:"active"`
}

func (pr *productRequest) toProduct() *types.Product {
	product := &types.Product{
		CategoryID:  pr.CategoryID,
		Name:        pr.Name,
		Description: pr.Description,
		Price:       pr.Price,
		ImageURL:    pr.ImageURL,
		Images:      pr.Images,
		Stock:       pr.Stock,
		Attributes:  pr.Attributes,
		Active:      true,
	}
	if pr.Active != nil {
		product.Active = *pr.Active
	}
	return product
}

func (ch *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ch.catalogService.CreateProduct(c.Request.Context(), req.toProduct())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "product_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"product": created})
}

func (ch *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	product := req.toProduct()
	product.ID = productID
	updated, err := ch.catalogService.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "product_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"product": updated})
}

func (ch *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.catalogService.DeleteProduct(c.Request.Context(), productID); err != nil {
		RespondError(c, http.StatusBadRequest, "product_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": productID})
}
