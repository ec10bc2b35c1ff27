package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartnerHandler handles referral-partner HTTP requests
type PartnerHandler struct {
	partnerService *services.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// ListPartners handles GET /partners
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	all := c.Query("all") == "true"
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	partners, total, err := h.partnerService.ListPartners(c.Request.Context(), search, page, limit, all)
	if err != nil {
		handleServiceError(c, err, "", "Failed to fetch referral partners")
		return
	}

	if all {
		respondData(c, http.StatusOK, partners)
		return
	}
	respondPage(c, partners, models.NewPagination(page, limit, total))
}

// GetPartner handles GET /partners/:id
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	partner, err := h.partnerService.GetPartner(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Referral partner not found", "Failed to fetch referral partner")
		return
	}

	respondData(c, http.StatusOK, partner)
}

// CreatePartner handles POST /partners
func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	var partner models.ReferralPartner
	if err := c.ShouldBindJSON(&partner); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.partnerService.CreatePartner(c.Request.Context(), &partner); err != nil {
		handleServiceError(c, err, "", "Failed to create referral partner")
		return
	}

	respondCreated(c, partner, "Referral partner created successfully")
}

// UpdatePartner handles PUT /partners/:id
func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var partner models.ReferralPartner
	if err := c.ShouldBindJSON(&partner); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	partner.ID = id

	if err := h.partnerService.UpdatePartner(c.Request.Context(), &partner); err != nil {
		handleServiceError(c, err, "Referral partner not found", "Failed to update referral partner")
		return
	}

	respondDataMessage(c, partner, "Referral partner updated successfully")
}

// UpdatePartnerStatus handles PATCH /partners/:id/status
func (h *PartnerHandler) UpdatePartnerStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.partnerService.UpdateStatus(c.Request.Context(), id, body.Status); err != nil {
		handleServiceError(c, err, "Referral partner not found", "Failed to update referral partner")
		return
	}

	respondMessage(c, "Referral partner status updated successfully")
}

// DeletePartner handles DELETE /partners/:id
func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.partnerService.DeletePartner(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Referral partner not found", "Failed to delete referral partner")
		return
	}

	respondMessage(c, "Referral partner deleted successfully")
}

// GetPartnerStatistics handles GET /partners/:id/statistics
func (h *PartnerHandler) GetPartnerStatistics(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	stats, err := h.partnerService.GetStatistics(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Referral partner not found", "Failed to fetch partner statistics")
		return
	}

	respondData(c, http.StatusOK, stats)
}
