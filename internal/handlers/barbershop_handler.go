package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/cache"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/models"
	"github.com/fadecrew/barbershop-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type BarbershopHandler struct {
	db    *gorm.DB
	cache *cache.Catalog
}

func NewBarbershopHandler(db *gorm.DB, cc *cache.Catalog) *BarbershopHandler {
	return &BarbershopHandler{db: db, cache: cc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarbershopRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Address     string  `json:"address" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	WorkingHours  domain.Schedule `json:"workingHours"`
	Timezone      string          `json:"timezone"`
	CancelLeadMin int             `json:"cancelLeadMin"`
}

type UpdateBarbershopRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Address     *string  `json:"address"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	WorkingHours  *domain.Schedule `json:"workingHours"`
	Timezone      *string          `json:"timezone"`
	CancelLeadMin *int             `json:"cancelLeadMin"`
}

// ======================================================
// PUBLIC READS
// ======================================================

func (h *BarbershopHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	shopType := c.Query("type")
	location := c.Query("location")
	minRating := c.Query("rating")

	// Only the unfiltered first page is worth caching; filtered reads
	// go straight through.
	cacheable := shopType == "" && location == "" && minRating == "" && page == 1

	if cacheable {
		var cached []models.Barbershop
		if h.cache.Get(c.Request.Context(), cache.ShopListKey(), &cached) {
			httpresp.OK(c, "Barbershops retrieved successfully", gin.H{"barbershops": cached})
			return
		}
	}

	q := h.db.Model(&models.Barbershop{})
	if shopType != "" {
		q = q.Where("type = ?", shopType)
	}
	if location != "" {
		q = q.Where("address ILIKE ?", "%"+location+"%")
	}
	if minRating != "" {
		q = q.Where("rating >= ?", minRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "shop_list_failed", "Internal error.")
		return
	}

	var shops []models.Barbershop
	if err := q.
		Order("rating DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&shops).Error; err != nil {
		httperr.Internal(c, "shop_list_failed", "Internal error.")
		return
	}

	if cacheable {
		h.cache.Set(c.Request.Context(), cache.ShopListKey(), shops)
	}

	httpresp.Paginated(c, "Barbershops retrieved successfully", "barbershops", shops, httpresp.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var shop models.Barbershop
	if h.cache.Get(c.Request.Context(), cache.ShopKey(id), &shop) {
		httpresp.OK(c, "Barbershop retrieved successfully", gin.H{"barbershop": shop})
		return
	}

	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	h.cache.Set(c.Request.Context(), cache.ShopKey(id), shop)
	httpresp.OK(c, "Barbershop retrieved successfully", gin.H{"barbershop": shop})
}

func (h *BarbershopHandler) ListBarbers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var barbers []models.Barber
	if h.cache.Get(c.Request.Context(), cache.ShopBarbersKey(id), &barbers) {
		httpresp.OK(c, "Barbers retrieved successfully", gin.H{"barbers": barbers})
		return
	}

	if err := h.db.
		Preload("Services").
		Where("barbershop_id = ? AND active = true", id).
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "barber_list_failed", "Internal error.")
		return
	}

	h.cache.Set(c.Request.Context(), cache.ShopBarbersKey(id), barbers)
	httpresp.OK(c, "Barbers retrieved successfully", gin.H{"barbers": barbers})
}

// ======================================================
// ADMIN WRITES
// ======================================================

func (h *BarbershopHandler) Create(c *gin.Context) {
	var req CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := req.WorkingHours.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_schedule", err.Error())
		return
	}

	tz := req.Timezone
	if tz != "" && !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Slug already in use.")
		return
	}

	whJSON, _ := json.Marshal(req.WorkingHours)

	shop := models.Barbershop{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Type:          req.Type,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		WorkingHours:  whJSON,
		Timezone:      tz,
		CancelLeadMin: req.CancelLeadMin,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barbershop", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopListKey())
	httpresp.Created(c, "Barbershop created successfully", gin.H{"barbershop": shop})
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	if !adminOfShop(c, id) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.WorkingHours != nil {
		if err := req.WorkingHours.Validate(); err != nil {
			httperr.BadRequest(c, "invalid_schedule", err.Error())
			return
		}
		whJSON, _ := json.Marshal(*req.WorkingHours)
		shop.WorkingHours = whJSON
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.Type != nil {
		shop.Type = *req.Type
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Latitude != nil {
		shop.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		shop.Longitude = *req.Longitude
	}
	if req.CancelLeadMin != nil {
		shop.CancelLeadMin = *req.CancelLeadMin
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopKey(id), cache.ShopListKey())
	httpresp.OK(c, "Barbershop updated successfully", gin.H{"barbershop": shop})
}

func (h *BarbershopHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	if err := h.db.Delete(&models.Barbershop{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barbershop", "Internal error.")
		return
	}

	h.cache.Invalidate(
		c.Request.Context(),
		cache.ShopKey(id),
		cache.ShopListKey(),
		cache.ShopServicesKey(id),
		cache.ShopBarbersKey(id),
	)
	httpresp.OK(c, "Barbershop deleted successfully", nil)
}
