package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// adminOfShop reports whether the caller may administer the given shop:
// its own admins, or any superadmin.
func adminOfShop(c *gin.Context, shopID uint) bool {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return false
	}
	if p.Role == models.RoleSuperadmin {
		return true
	}
	return p.Role == models.RoleAdmin &&
		p.BarbershopID != nil &&
		*p.BarbershopID == shopID
}
