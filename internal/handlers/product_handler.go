package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/cache"
	"github.com/reselltrack/reselltrack_pro_be/internal/filter"
	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

type ProductHandler struct {
	Products  *store.ProductStore
	Analytics *store.AnalyticsStore
	Cache     *cache.Cache
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

func productSortField(s string) string {
	switch s {
	case "name", "listing_price", "created_at", "status":
		return s
	}
	return ""
}

// List returns the caller's products with filtering and sorting applied
// in memory over the full live collection.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sess := getSession(c)

	products, err := h.Products.List(c.Context(), sess.UserID)
	if err != nil {
		h.Log.Error("list products", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load products",
		})
	}

	f := filter.ProductFilter{
		Status:   c.Query("status", filter.All),
		Category: c.Query("category", filter.All),
		Search:   c.Query("q"),
	}
	s := filter.Sort{
		Field:     productSortField(c.Query("sort")),
		Direction: filter.Direction(c.Query("dir", "desc")),
	}

	out := filter.Products(products, f, s)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"products": out,
			"total":    len(out),
		},
	})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product id",
		})
	}

	p, err := h.Products.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.Log.Error("get product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load product",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

type productCreateRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Condition     string   `json:"condition"`
	Platform      string   `json:"platform"`
	ListingPrice  int64    `json:"listing_price"`
	PurchasePrice *int64   `json:"purchase_price"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
}

func (r *productCreateRequest) validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		fe.Add("name", "Name is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		fe.Add("category", "Category is required")
	}
	if r.ListingPrice <= 0 {
		fe.Add("listing_price", "Listing price must be greater than zero")
	}
	if r.PurchasePrice != nil && *r.PurchasePrice < 0 {
		fe.Add("purchase_price", "Purchase price cannot be negative")
	}
	if r.Condition != "" && !validCondition(models.ProductCondition(r.Condition)) {
		fe.Add("condition", "Unknown condition")
	}
	return fe
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	sess := getSession(c)

	var req productCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if fe := req.validate(); len(fe) > 0 {
		return validationFail(c, fe)
	}

	cond := models.ConditionGood
	if req.Condition != "" {
		cond = models.ProductCondition(req.Condition)
	}

	p := models.Product{
		UserID:        sess.UserID,
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Condition:     cond,
		Platform:      strings.TrimSpace(req.Platform),
		Status:        models.ProductListed,
		ListingPrice:  req.ListingPrice,
		PurchasePrice: req.PurchasePrice,
		Tags:          tagsJSON(req.Tags),
		Notes:         strings.TrimSpace(req.Notes),
	}

	if err := h.Products.Create(c.Context(), &p); err != nil {
		h.Log.Error("create product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create product",
		})
	}

	h.recordEvent(c, sess.UserID, "product_created", p.ID)
	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created",
		"data":    p,
	})
}

type productUpdateRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category"`
	Condition     *string   `json:"condition"`
	Platform      *string   `json:"platform"`
	Status        *string   `json:"status"`
	ListingPrice  *int64    `json:"listing_price"`
	PurchasePrice *int64    `json:"purchase_price"`
	Tags          *[]string `json:"tags"`
	Notes         *string   `json:"notes"`
}

func (r *productUpdateRequest) validate() FieldErrors {
	fe := FieldErrors{}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fe.Add("name", "Name cannot be empty")
	}
	if r.ListingPrice != nil && *r.ListingPrice <= 0 {
		fe.Add("listing_price", "Listing price must be greater than zero")
	}
	if r.PurchasePrice != nil && *r.PurchasePrice < 0 {
		fe.Add("purchase_price", "Purchase price cannot be negative")
	}
	if r.Condition != nil && !validCondition(models.ProductCondition(*r.Condition)) {
		fe.Add("condition", "Unknown condition")
	}
	if r.Status != nil {
		switch models.ProductStatus(*r.Status) {
		case models.ProductListed, models.ProductPending, models.ProductExpired:
		case models.ProductSold:
			fe.Add("status", "Use the mark-sold endpoint to sell a product")
		default:
			fe.Add("status", "Unknown status")
		}
	}
	return fe
}

// Update applies a partial update; only fields present in the body change.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product id",
		})
	}

	var req productUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	p, err := h.Products.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.Log.Error("get product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load product",
		})
	}

	if fe := req.validate(); len(fe) > 0 {
		return validationFail(c, fe)
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.ListingPrice != nil {
		p.ListingPrice = *req.ListingPrice
	}
	if req.Status != nil {
		p.Status = models.ProductStatus(*req.Status)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Condition != nil {
		p.Condition = models.ProductCondition(*req.Condition)
	}
	if req.Platform != nil {
		p.Platform = strings.TrimSpace(*req.Platform)
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = req.PurchasePrice
	}
	if req.Tags != nil {
		p.Tags = tagsJSON(*req.Tags)
	}
	if req.Notes != nil {
		p.Notes = strings.TrimSpace(*req.Notes)
	}
	p.RecalcProfit()

	if err := h.Products.Save(c.Context(), p); err != nil {
		h.Log.Error("save product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update product",
		})
	}

	h.recordEvent(c, sess.UserID, "product_updated", p.ID)
	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated",
		"data":    p,
	})
}

type markSoldRequest struct {
	SoldPrice int64 `json:"sold_price"`
}

func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product id",
		})
	}

	var req markSoldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if req.SoldPrice <= 0 {
		fe := FieldErrors{}
		fe.Add("sold_price", "Sold price must be greater than zero")
		return validationFail(c, fe)
	}

	p, err := h.Products.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.Log.Error("get product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load product",
		})
	}

	if p.Status == models.ProductSold {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Product is already sold",
		})
	}

	now := time.Now()
	p.Status = models.ProductSold
	p.SoldPrice = &req.SoldPrice
	p.SoldAt = &now
	p.RecalcProfit()

	if err := h.Products.Save(c.Context(), p); err != nil {
		h.Log.Error("mark sold", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to mark product as sold",
		})
	}

	h.recordEvent(c, sess.UserID, "product_sold", p.ID)
	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product marked as sold",
		"data":    p,
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product id",
		})
	}

	if err := h.Products.SoftDelete(c.Context(), sess.UserID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		h.Log.Error("delete product", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("product").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete product",
		})
	}

	h.recordEvent(c, sess.UserID, "product_deleted", id)
	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
	})
}

func (h *ProductHandler) recordEvent(c *fiber.Ctx, ownerID uuid.UUID, typ string, productID uuid.UUID) {
	ev := models.AnalyticsEvent{
		UserID:    ownerID,
		EventType: typ,
		Payload:   datatypes.JSON([]byte(`{"product_id":"` + productID.String() + `"}`)),
	}
	if err := h.Analytics.Create(c.Context(), &ev); err != nil {
		// analytics is best effort; the write already succeeded
		h.Log.Warn("record event", "type", typ, "err", err)
	}
}

func validCondition(c models.ProductCondition) bool {
	switch c {
	case models.ConditionNew, models.ConditionLikeNew, models.ConditionGood,
		models.ConditionFair, models.ConditionPoor:
		return true
	}
	return false
}

func tagsJSON(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
