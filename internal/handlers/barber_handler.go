package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/cache"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db    *gorm.DB
	cache *cache.Catalog
}

func NewBarberHandler(db *gorm.DB, cc *cache.Catalog) *BarberHandler {
	return &BarberHandler{db: db, cache: cc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarberRequest struct {
	BarbershopID uint   `json:"barbershop_id"`
	DisplayName  string `json:"display_name" binding:"required"`
	Bio          string `json:"bio"`
	UserID       *uint  `json:"user_id"`

	Specialties  []string        `json:"specialties"`
	WorkingHours domain.Schedule `json:"workingHours"`
	ServiceIDs   []uint          `json:"service_ids"`
}

type UpdateBarberRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Active      *bool   `json:"active"`

	Specialties  *[]string        `json:"specialties"`
	WorkingHours *domain.Schedule `json:"workingHours"`
}

type AssignServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	q := h.db.Preload("Services")
	if p.Role == models.RoleAdmin {
		if p.BarbershopID == nil {
			httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
			return
		}
		q = q.Where("barbershop_id = ?", *p.BarbershopID)
	} else if shopID, ok := queryID(c, "barbershopId"); ok {
		q = q.Where("barbershop_id = ?", shopID)
	}

	var barbers []models.Barber
	if err := q.Find(&barbers).Error; err != nil {
		httperr.Internal(c, "barber_list_failed", "Internal error.")
		return
	}

	httpresp.OK(c, "Barbers retrieved successfully", gin.H{"barbers": barbers})
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.Preload("Services").First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	httpresp.OK(c, "Barber retrieved successfully", gin.H{"barber": barber})
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shopID := h.resolveShopID(c, req.BarbershopID)
	if shopID == 0 {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	if err := req.WorkingHours.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_schedule", err.Error())
		return
	}

	specJSON, _ := json.Marshal(req.Specialties)
	whJSON, _ := json.Marshal(req.WorkingHours)

	barber := models.Barber{
		BarbershopID: shopID,
		UserID:       req.UserID,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		Specialties:  specJSON,
		WorkingHours: whJSON,
		Active:       true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&barber).Error; err != nil {
			return err
		}

		if len(req.ServiceIDs) > 0 {
			var services []models.Service
			if err := tx.
				Where("id IN ? AND barbershop_id = ?", req.ServiceIDs, shopID).
				Find(&services).Error; err != nil {
				return err
			}
			if len(services) != len(req.ServiceIDs) {
				return httperr.ErrBusiness("services_not_found")
			}
			if err := tx.Model(&barber).Association("Services").Replace(services); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopBarbersKey(shopID))
	httpresp.Created(c, "Barber created successfully", gin.H{"barber": barber})
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if !adminOfShop(c, barber.BarbershopID) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	var req UpdateBarberRequest
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
		barber.WorkingHours = whJSON
	}
	if req.Specialties != nil {
		specJSON, _ := json.Marshal(*req.Specialties)
		barber.Specialties = specJSON
	}
	if req.DisplayName != nil {
		barber.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopBarbersKey(barber.BarbershopID))
	httpresp.OK(c, "Barber updated successfully", gin.H{"barber": barber})
}

// AssignServices replaces the barber's capability set.
func (h *BarberHandler) AssignServices(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if !adminOfShop(c, barber.BarbershopID) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	var req AssignServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var services []models.Service
	if err := h.db.
		Where("id IN ? AND barbershop_id = ?", req.ServiceIDs, barber.BarbershopID).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "service_lookup_failed", "Internal error.")
		return
	}
	if len(services) != len(req.ServiceIDs) {
		httperr.NotFound(c, "services_not_found", "Some services not found.")
		return
	}

	if err := h.db.Model(&barber).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_assign_services", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopBarbersKey(barber.BarbershopID))
	httpresp.OK(c, "Services assigned successfully", gin.H{"barber_id": barber.ID, "service_ids": req.ServiceIDs})
}

func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if !adminOfShop(c, barber.BarbershopID) {
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	// Soft-disable: bookings keep pointing at a real row.
	if err := h.db.Model(&barber).Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Internal error.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.ShopBarbersKey(barber.BarbershopID))
	httpresp.OK(c, "Barber removed successfully", nil)
}

// resolveShopID picks the target shop for a create: admins are pinned
// to their own shop, superadmins must name one.
func (h *BarberHandler) resolveShopID(c *gin.Context, requested uint) uint {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return 0
	}

	switch p.Role {
	case models.RoleAdmin:
		if p.BarbershopID == nil {
			return 0
		}
		return *p.BarbershopID
	case models.RoleSuperadmin:
		return requested
	default:
		return 0
	}
}
