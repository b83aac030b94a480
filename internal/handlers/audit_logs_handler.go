package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	// Admins are pinned to their own shop; superadmins pick one via
	// query (or see everything).
	var shopID *uint
	if p.Role == models.RoleSuperadmin {
		if id, ok := queryID(c, "barbershopId"); ok {
			shopID = &id
		}
	} else {
		if p.BarbershopID == nil {
			httperr.Forbidden(c, "forbidden", "No barbershop bound to this account.")
			return
		}
		shopID = p.BarbershopID
	}

	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query
	// --------------------------------------------------

	q := h.db.Model(&models.AuditLog{})
	if shopID != nil {
		q = q.Where("barbershop_id = ?", *shopID)
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	// --------------------------------------------------
	// Count + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	httpresp.Paginated(c, "Audit logs retrieved successfully", "logs", logs, httpresp.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
