package services

import (
	"context"
	"testing"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardGetStats(t *testing.T) {
	ctx := context.Background()

	partnerRepo := memory.NewPartnerRepository()
	leadRepo := memory.NewLeadRepository()
	svc := NewDashboardService(partnerRepo, leadRepo)

	t.Run("empty store yields zeroes", func(t *testing.T) {
		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalPartners)
		assert.Equal(t, 0, stats.TotalLeads)
	})

	t.Run("counts partners by status and folds every lead", func(t *testing.T) {
		active := newPartnerFixture("Global Studies", "contact@globalstudies.com", "9876543210")
		require.NoError(t, partnerRepo.Create(ctx, active))
		inactive := newPartnerFixture("Dormant Agency", "dormant@agency.com", "9876500000")
		inactive.Status = models.PartnerStatusInactive
		require.NoError(t, partnerRepo.Create(ctx, inactive))

		require.NoError(t, leadRepo.Create(ctx, &models.StudentLead{
			Name:             "Rahul Mehta",
			Email:            "rahul@example.com",
			ReferralPartner:  active.ID,
			Status:           models.LeadStatusAdmitted,
			CommissionAmount: 100,
			CommissionStatus: models.CommissionStatusPaid,
		}))
		require.NoError(t, leadRepo.Create(ctx, &models.StudentLead{
			Name:             "Sneha Iyer",
			Email:            "sneha@example.com",
			ReferralPartner:  inactive.ID,
			Status:           models.LeadStatusNew,
			CommissionAmount: 50,
			CommissionStatus: models.CommissionStatusPending,
		}))

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalPartners)
		assert.Equal(t, int64(1), stats.ActivePartners)
		assert.Equal(t, 2, stats.TotalLeads)
		assert.Equal(t, float64(150), stats.Commission.TotalCommission)
		assert.Equal(t, float64(100), stats.Commission.PaidCommission)
		assert.Equal(t, float64(50), stats.Commission.PendingCommission)
	})
}
