package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadHandler handles student-lead HTTP requests
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// ListLeads handles GET /leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := services.ListLeadsOptions{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
		All:    c.Query("all") == "true",
	}
	if partnerID := c.Query("referralPartnerId"); partnerID != "" {
		id, err := primitive.ObjectIDFromHex(partnerID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid referral partner ID format")
			return
		}
		opts.ReferralPartnerID = &id
	}

	leads, total, err := h.leadService.ListLeads(c.Request.Context(), opts)
	if err != nil {
		handleServiceError(c, err, "", "Failed to fetch student leads")
		return
	}

	if opts.All {
		respondData(c, http.StatusOK, leads)
		return
	}
	respondPage(c, leads, models.NewPagination(page, limit, total))
}

// GetLead handles GET /leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Student lead not found", "Failed to fetch student lead")
		return
	}

	respondData(c, http.StatusOK, lead)
}

// CreateLead handles POST /leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var lead models.StudentLead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.leadService.CreateLead(c.Request.Context(), &lead); err != nil {
		handleServiceError(c, err, "", "Failed to create student lead")
		return
	}

	respondCreated(c, lead, "Student lead created successfully")
}

// UpdateLead handles PUT /leads/:id
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var lead models.StudentLead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	lead.ID = id

	if err := h.leadService.UpdateLead(c.Request.Context(), &lead); err != nil {
		handleServiceError(c, err, "Student lead not found", "Failed to update student lead")
		return
	}

	respondDataMessage(c, lead, "Student lead updated successfully")
}

// DeleteLead handles DELETE /leads/:id
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Student lead not found", "Failed to delete student lead")
		return
	}

	respondMessage(c, "Student lead deleted successfully")
}
