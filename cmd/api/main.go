package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/studybridge/crm-backend/api/routes"
	"github.com/studybridge/crm-backend/internal/config"
	"github.com/studybridge/crm-backend/internal/handlers"
	"github.com/studybridge/crm-backend/internal/repositories"
	mongorepo "github.com/studybridge/crm-backend/internal/repositories/mongodb"
	"github.com/studybridge/crm-backend/internal/services"
	"github.com/studybridge/crm-backend/pkg/logger"
	"github.com/studybridge/crm-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	mongoClient, err := mongodb.Connect(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	partnerRepoImpl := mongorepo.NewPartnerRepository(db)
	leadRepoImpl := mongorepo.NewLeadRepository(db)
	categoryRepoImpl := mongorepo.NewCategoryRepository(db)
	adminRepoImpl := mongorepo.NewAdminUserRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		partnerRepoImpl.EnsureIndexes,
		leadRepoImpl.EnsureIndexes,
		categoryRepoImpl.EnsureIndexes,
		adminRepoImpl.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.Error(err))
		}
	}

	var partnerRepo repositories.ReferralPartnerRepository = partnerRepoImpl
	var leadRepo repositories.StudentLeadRepository = leadRepoImpl
	var categoryRepo repositories.CategoryRepository = categoryRepoImpl
	var adminRepo repositories.AdminUserRepository = adminRepoImpl

	partnerService := services.NewPartnerService(partnerRepo, leadRepo)
	leadService := services.NewLeadService(leadRepo, partnerRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	authService := services.NewAuthService(adminRepo, cfg)
	dashboardService := services.NewDashboardService(partnerRepo, leadRepo)

	handlerDeps := routes.HandlerDependencies{
		AuthHandler:      handlers.NewAuthHandler(authService),
		PartnerHandler:   handlers.NewPartnerHandler(partnerService),
		LeadHandler:      handlers.NewLeadHandler(leadService),
		CategoryHandler:  handlers.NewCategoryHandler(categoryService),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
