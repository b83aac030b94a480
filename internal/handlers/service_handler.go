package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/cache"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Catalog
}

func NewServiceHandler(db *gorm.DB, cc *cache.Catalog) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	BarbershopID uint   `json:"barbershop_id"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PriceCents   int    `json:"price_cents" binding:"required,gt=0"`
	DurationMin  int    `json:"duration_min" binding:"required,gt=0"`

	// Barbers immediately capable of this offering.
	BarberIDs []uint `json:"barber_ids"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PriceCents  *int    `json:"price_cents"`
	DurationMin *int    `json:"duration_min"`
	Active      *bool   `json:"active"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	shopID, ok := queryID(c, "barbershopId")
	if !ok {
		httperr.BadRequest(c, "missing_barbershop_id", "barbershopId is required.")
		return
	}

	var services []models.Service
	if h.cache.Get(c.Request.Context(), cache.ShopServicesKey(shopID), &services) {
		httpresp.OK(c, "Services retrieved successfully", gin.H{"services": services})
		return
	}

	if err := h.db.
		Where("barbershop_id = ? AND active = true", shopID).
		Order("category, name").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "service_list_failed", "Internal error.")
		return
	}

	h.cache.Set(c.Request.Context(), cache.ShopServicesKey(shopID), services)
	httpresp.OK(c, "Services retrieved successfully", gin.H{"services": services})
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, "Service retrieved successfully", gin.H{"service": service})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shopID := req.BarbershopID
	p := middleware.GetPrincipal(c)
	if p.Role == models.RoleAdmin {
		if p.BarbershopID == nil {
			httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
			return
		}
		shopID = *p.BarbershopID
	}
	if shopID == 0 {
		httperr.BadRequest(c, "missing_barbershop_id", "barbershop_id is required.")
		return
	}

	service := models.Service{
		BarbershopID: shopID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		PriceCents:   req.PriceCents,
		DurationMin:  req.DurationMin,
		Active:       true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&service).Error; err != nil {
			return err
		}

		if len(req.BarberIDs) > 0 {
			var barbers []models.Barber
			if err := tx.
				Where("id IN ? AND barbershop_id = ?", req.BarberIDs, shopID).
				Find(&barbers).Error; err != nil {
				return err
			}
			if len(barbers) != len(req.BarberIDs) {
				return httperr.ErrBusiness("barber_not_found")
			}
			for i := range barbers {
				if err := tx.Model(&barbers[i]).Association("Services").Append(&service); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	h.cache.Invalidate(
		c.Request.Context(),
		cache.ShopServicesKey(shopID),
		cache.ShopBarbersKey(shopID),
	)
	httpresp.Created(c, "Service created successfully", gin.H{"service": service})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if !adminOfShop(c, service.BarbershopID) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Price and duration edits only affect future bookings; line items
	// already written keep their snapshots.
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.PriceCents != nil && *req.PriceCents > 0 {
		service.PriceCents = *req.PriceCents
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		service.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopServicesKey(service.BarbershopID))
	httpresp.OK(c, "Service updated successfully", gin.H{"service": service})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if !adminOfShop(c, service.BarbershopID) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	// Deactivate instead of delete: line items reference the row.
	if err := h.db.Model(&service).Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopServicesKey(service.BarbershopID))
	httpresp.OK(c, "Service deleted successfully", nil)
}
