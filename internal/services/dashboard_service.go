package services

import (
	"context"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
)

// DashboardService assembles headline numbers for the admin dashboard
type DashboardService struct {
	partnerRepo repositories.ReferralPartnerRepository
	leadRepo    repositories.StudentLeadRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(partnerRepo repositories.ReferralPartnerRepository, leadRepo repositories.StudentLeadRepository) *DashboardService {
	return &DashboardService{
		partnerRepo: partnerRepo,
		leadRepo:    leadRepo,
	}
}

// GetStats counts partners and folds every lead into the global commission
// and status aggregates
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	totalPartners, err := s.partnerRepo.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	activePartners, err := s.partnerRepo.CountByStatus(ctx, models.PartnerStatusActive)
	if err != nil {
		return nil, err
	}
	leads, err := s.leadRepo.Find(ctx, repositories.LeadFilter{}, 0, 0, true)
	if err != nil {
		return nil, err
	}

	commission := ComputeStatistics(leads)
	return &models.DashboardStats{
		TotalPartners:  totalPartners,
		ActivePartners: activePartners,
		TotalLeads:     len(leads),
		Commission:     *commission,
	}, nil
}
