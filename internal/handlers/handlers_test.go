package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories/memory"
	"github.com/studybridge/crm-backend/internal/services"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors models.Response with the data left raw so each test can
// decode it into the type it expects
type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
}

// testEnv wires the handlers over in-memory repositories and mounts them on a
// bare router, without the auth middleware
type testEnv struct {
	router       *gin.Engine
	partnerRepo  *memory.PartnerRepository
	leadRepo     *memory.LeadRepository
	categoryRepo *memory.CategoryRepository
	authService  *services.AuthService
}

func newTestEnv() *testEnv {
	partnerRepo := memory.NewPartnerRepository()
	leadRepo := memory.NewLeadRepository()
	categoryRepo := memory.NewCategoryRepository()
	adminRepo := memory.NewAdminUserRepository()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}

	partnerHandler := NewPartnerHandler(services.NewPartnerService(partnerRepo, leadRepo))
	leadHandler := NewLeadHandler(services.NewLeadService(leadRepo, partnerRepo, categoryRepo))
	categoryHandler := NewCategoryHandler(services.NewCategoryService(categoryRepo))
	authService := services.NewAuthService(adminRepo, cfg)
	authHandler := NewAuthHandler(authService)
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(partnerRepo, leadRepo))

	router := gin.New()
	router.POST("/auth/login", authHandler.Login)

	router.GET("/partners", partnerHandler.ListPartners)
	router.POST("/partners", partnerHandler.CreatePartner)
	router.GET("/partners/:id", partnerHandler.GetPartner)
	router.PUT("/partners/:id", partnerHandler.UpdatePartner)
	router.PATCH("/partners/:id/status", partnerHandler.UpdatePartnerStatus)
	router.DELETE("/partners/:id", partnerHandler.DeletePartner)
	router.GET("/partners/:id/statistics", partnerHandler.GetPartnerStatistics)

	router.GET("/leads", leadHandler.ListLeads)
	router.POST("/leads", leadHandler.CreateLead)
	router.GET("/leads/:id", leadHandler.GetLead)
	router.PUT("/leads/:id", leadHandler.UpdateLead)
	router.DELETE("/leads/:id", leadHandler.DeleteLead)

	router.GET("/categories", categoryHandler.ListCategories)
	router.POST("/categories", categoryHandler.CreateCategory)
	router.PUT("/categories", categoryHandler.UpdateCategory)
	router.DELETE("/categories", categoryHandler.DeleteCategory)

	router.GET("/dashboard/stats", dashboardHandler.GetStats)

	return &testEnv{
		router:       router,
		partnerRepo:  partnerRepo,
		leadRepo:     leadRepo,
		categoryRepo: categoryRepo,
		authService:  authService,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, &env
}

func (e *testEnv) seedPartner(t *testing.T, name, email, phone string) *models.ReferralPartner {
	t.Helper()
	partner := &models.ReferralPartner{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Address:     "12 College Road",
		City:        "Pune",
		State:       "Maharashtra",
		District:    "Pune",
		Country:     "India",
		Pincode:     "411001",
		PartnerType: models.PartnerTypeAgency,
		Status:      models.PartnerStatusActive,
	}
	require.NoError(t, e.partnerRepo.Create(context.Background(), partner))
	return partner
}

func (e *testEnv) seedCategory(t *testing.T, name, categoryType string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Type: categoryType, IsActive: true}
	require.NoError(t, e.categoryRepo.Create(context.Background(), category))
	return category
}
