package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/cache"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/media"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// Uploads are capped before decode; Normalize shrinks whatever passes.
const maxImageBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	cache    *cache.Catalog
}

func NewMediaHandler(db *gorm.DB, up *media.Uploader, cc *cache.Catalog) *MediaHandler {
	return &MediaHandler{db: db, uploader: up, cache: cc}
}

// ======================================================
// UPLOAD
// ======================================================

func (h *MediaHandler) UploadShopImage(c *gin.Context) {
	if h.uploader == nil {
		httperr.BadRequest(c, "uploads_disabled", "Image uploads are not configured.")
		return
	}

	shopID, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barbershop id.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}

	if !adminOfShop(c, shop.ID) {
		httperr.Forbidden(c, "forbidden", "You cannot manage this barbershop.")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if fh.Size > maxImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image exceeds the 10MB limit.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "image_read_failed", "Failed to read uploaded image.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil || int64(len(raw)) > maxImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image exceeds the 10MB limit.")
		return
	}

	url, err := h.uploader.UploadShopImage(c.Request.Context(), shop.ID, raw)
	if err != nil {
		httperr.Internal(c, "image_upload_failed", "Failed to store image.")
		return
	}

	// Append to the shop's gallery.
	var images []string
	if len(shop.Images) > 0 {
		_ = json.Unmarshal(shop.Images, &images)
	}
	images = append(images, url)

	encoded, err := json.Marshal(images)
	if err != nil {
		httperr.Internal(c, "image_save_failed", "Failed to update gallery.")
		return
	}
	if err := h.db.Model(&shop).Update("images", encoded).Error; err != nil {
		httperr.Internal(c, "image_save_failed", "Failed to update gallery.")
		return
	}

	h.cache.Invalidate(c.Request.Context(),
		cache.ShopKey(shop.ID),
		cache.ShopListKey(),
	)

	httpresp.Created(c, "Image uploaded successfully", gin.H{
		"url":    url,
		"images": images,
	})
}
