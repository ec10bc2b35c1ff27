package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type leadFixtures struct {
	svc         *LeadService
	leadRepo    *memory.LeadRepository
	partnerRepo *memory.PartnerRepository
	course      *models.Category
	country     *models.Category
	partner     *models.ReferralPartner
}

func newLeadFixtures(t *testing.T) *leadFixtures {
	t.Helper()
	ctx := context.Background()

	leadRepo := memory.NewLeadRepository()
	partnerRepo := memory.NewPartnerRepository()
	categoryRepo := memory.NewCategoryRepository()

	course := &models.Category{Name: "Engineering", Type: models.CategoryTypeCourse, IsActive: true}
	require.NoError(t, categoryRepo.Create(ctx, course))
	country := &models.Category{Name: "Canada", Type: models.CategoryTypeCountry, IsActive: true}
	require.NoError(t, categoryRepo.Create(ctx, country))

	partner := newPartnerFixture("Global Studies", "contact@globalstudies.com", "9876543210")
	require.NoError(t, partnerRepo.Create(ctx, partner))

	return &leadFixtures{
		svc:         NewLeadService(leadRepo, partnerRepo, categoryRepo),
		leadRepo:    leadRepo,
		partnerRepo: partnerRepo,
		course:      course,
		country:     country,
		partner:     partner,
	}
}

func (f *leadFixtures) newLead(name, email string) *models.StudentLead {
	return &models.StudentLead{
		Name:              name,
		Email:             email,
		Phone:             "9123456789",
		CourseApplied:     f.course.ID,
		CountryPreference: f.country.ID,
		Status:            models.LeadStatusNew,
		ReferralPartner:   f.partner.ID,
		CommissionAmount:  0,
		CommissionStatus:  models.CommissionStatusPending,
	}
}

func TestCreateLead(t *testing.T) {
	ctx := context.Background()

	t.Run("valid lead is persisted with a lowercase email", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "Rahul.Mehta@Gmail.com")
		require.NoError(t, f.svc.CreateLead(ctx, lead))

		assert.False(t, lead.ID.IsZero())
		assert.Equal(t, "rahul.mehta@gmail.com", lead.Email)
	})

	t.Run("missing references are reported together", func(t *testing.T) {
		f := newLeadFixtures(t)

		err := f.svc.CreateLead(ctx, &models.StudentLead{})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Messages, "Course Applied is required")
		assert.Contains(t, validationErr.Messages, "Country Preference is required")
		assert.Contains(t, validationErr.Messages, "Referral Partner is required")
	})

	t.Run("negative commission is rejected", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		lead.CommissionAmount = -10
		err := f.svc.CreateLead(ctx, lead)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Messages, "Commission amount cannot be negative")
	})

	t.Run("duplicate email is rejected case-insensitively", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))

		err := f.svc.CreateLead(ctx, f.newLead("Other Student", "RAHUL@EXAMPLE.COM"))

		var dupErr *DuplicateFieldError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "email", dupErr.Field)
		assert.Equal(t, "A student with this email already exists", err.Error())
	})

	t.Run("duplicate phone is allowed", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))
		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Sneha Iyer", "sneha@example.com")))
	})
}

func TestUpdateLead(t *testing.T) {
	ctx := context.Background()

	t.Run("own email does not trip the duplicate check", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		require.NoError(t, f.svc.CreateLead(ctx, lead))

		updated := f.newLead("Rahul M Mehta", "rahul@example.com")
		updated.ID = lead.ID
		require.NoError(t, f.svc.UpdateLead(ctx, updated))

		got, err := f.svc.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rahul M Mehta", got.Name)
	})

	t.Run("another lead's email is rejected", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))
		other := f.newLead("Sneha Iyer", "sneha@example.com")
		require.NoError(t, f.svc.CreateLead(ctx, other))

		other.Email = "rahul@example.com"
		err := f.svc.UpdateLead(ctx, other)

		var dupErr *DuplicateFieldError
		assert.ErrorAs(t, err, &dupErr)
	})

	t.Run("unknown lead reports not found", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		lead.ID = primitive.NewObjectID()
		err := f.svc.UpdateLead(ctx, lead)
		assert.True(t, IsNotFound(err))
	})
}

func TestGetLead(t *testing.T) {
	ctx := context.Background()

	t.Run("references resolve to display names", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		require.NoError(t, f.svc.CreateLead(ctx, lead))

		got, err := f.svc.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "Engineering", got.CourseAppliedName)
		assert.Equal(t, "Canada", got.CountryPreferenceName)
		assert.Equal(t, "Global Studies", got.ReferralPartnerName)
	})

	t.Run("reading twice returns the same view", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		require.NoError(t, f.svc.CreateLead(ctx, lead))

		first, err := f.svc.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		second, err := f.svc.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("a deleted partner resolves to an empty name", func(t *testing.T) {
		f := newLeadFixtures(t)

		lead := f.newLead("Rahul Mehta", "rahul@example.com")
		require.NoError(t, f.svc.CreateLead(ctx, lead))
		require.NoError(t, f.partnerRepo.Delete(ctx, f.partner.ID))

		got, err := f.svc.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ReferralPartnerName)
		assert.Equal(t, "Engineering", got.CourseAppliedName)
	})

	t.Run("unknown lead reports not found", func(t *testing.T) {
		f := newLeadFixtures(t)

		_, err := f.svc.GetLead(ctx, primitive.NewObjectID())
		assert.True(t, IsNotFound(err))
	})
}

func TestListLeads(t *testing.T) {
	ctx := context.Background()

	t.Run("search matches email substrings", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul.mehta@gmail.com")))
		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Sneha Iyer", "sneha@university.edu")))

		leads, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{Search: "gmail", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, leads, 1)
		assert.Equal(t, "Rahul Mehta", leads[0].Name)
	})

	t.Run("search matches the course display name", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))

		leads, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{Search: "Engineering", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, leads, 1)
		assert.Equal(t, "Engineering", leads[0].CourseAppliedName)
	})

	t.Run("search matches the country display name case-insensitively", func(t *testing.T) {
		f := newLeadFixtures(t)

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))

		_, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{Search: "canada", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("partner filter narrows the listing", func(t *testing.T) {
		f := newLeadFixtures(t)

		other := newPartnerFixture("Other Agency", "other@agency.com", "9876500000")
		require.NoError(t, f.partnerRepo.Create(ctx, other))

		require.NoError(t, f.svc.CreateLead(ctx, f.newLead("Rahul Mehta", "rahul@example.com")))
		lead := f.newLead("Sneha Iyer", "sneha@example.com")
		lead.ReferralPartner = other.ID
		require.NoError(t, f.svc.CreateLead(ctx, lead))

		leads, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{ReferralPartnerID: &other.ID, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, leads, 1)
		assert.Equal(t, "Sneha Iyer", leads[0].Name)
	})

	t.Run("second page of fifteen holds the last five", func(t *testing.T) {
		f := newLeadFixtures(t)

		for i := 0; i < 15; i++ {
			lead := f.newLead(fmt.Sprintf("Student %02d", i), fmt.Sprintf("student%02d@example.com", i))
			require.NoError(t, f.svc.CreateLead(ctx, lead))
		}

		leads, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{Page: 2, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, leads, 5)
		assert.Equal(t, "Student 04", leads[0].Name)
		assert.Equal(t, "Student 00", leads[4].Name)
	})

	t.Run("total counts all matches even when all is set", func(t *testing.T) {
		f := newLeadFixtures(t)

		for i := 0; i < 12; i++ {
			lead := f.newLead(fmt.Sprintf("Student %02d", i), fmt.Sprintf("student%02d@example.com", i))
			require.NoError(t, f.svc.CreateLead(ctx, lead))
		}

		leads, total, err := f.svc.ListLeads(ctx, ListLeadsOptions{All: true})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		assert.Len(t, leads, 12)
	})
}

func TestComputeStatistics(t *testing.T) {
	t.Run("empty input yields zeroed breakdown with every status present", func(t *testing.T) {
		stats := ComputeStatistics(nil)
		assert.Equal(t, 0, stats.TotalLeads)
		assert.Equal(t, float64(0), stats.TotalCommission)
		require.Len(t, stats.StatusBreakdown, len(models.LeadStatuses))
		for _, status := range models.LeadStatuses {
			assert.Equal(t, 0, stats.StatusBreakdown[status])
		}
	})

	t.Run("paid and pending commissions are split", func(t *testing.T) {
		stats := ComputeStatistics([]*models.StudentLead{
			{Status: models.LeadStatusAdmitted, CommissionAmount: 100, CommissionStatus: models.CommissionStatusPaid},
			{Status: models.LeadStatusInProgress, CommissionAmount: 50, CommissionStatus: models.CommissionStatusPending},
		})
		assert.Equal(t, 2, stats.TotalLeads)
		assert.Equal(t, float64(150), stats.TotalCommission)
		assert.Equal(t, float64(100), stats.PaidCommission)
		assert.Equal(t, float64(50), stats.PendingCommission)
	})
}
