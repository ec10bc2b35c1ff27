package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func partnerPayload(name, email, phone string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"email":       email,
		"phone":       phone,
		"address":     "12 College Road",
		"city":        "Pune",
		"state":       "Maharashtra",
		"district":    "Pune",
		"country":     "India",
		"pincode":     "411001",
		"partnerType": models.PartnerTypeAgency,
		"status":      models.PartnerStatusActive,
	}
}

func TestCreatePartnerEndpoint(t *testing.T) {
	t.Run("valid partner answers 201 with the stored document", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodPost, "/partners", partnerPayload("Global Studies", "contact@globalstudies.com", "9876543210"))

		assert.Equal(t, http.StatusCreated, code)
		assert.True(t, resp.Success)
		assert.Equal(t, "Referral partner created successfully", resp.Message)

		var partner models.ReferralPartner
		require.NoError(t, json.Unmarshal(resp.Data, &partner))
		assert.False(t, partner.ID.IsZero())
		assert.Equal(t, "Global Studies", partner.Name)
	})

	t.Run("duplicate email answers 400 with the duplicate message", func(t *testing.T) {
		env := newTestEnv()
		env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")

		code, resp := env.do(t, http.MethodPost, "/partners", partnerPayload("Other Agency", "contact@globalstudies.com", "9876500000"))

		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
		assert.Equal(t, "A partner with this email already exists", resp.Error)
	})

	t.Run("validation failure answers 400", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodPost, "/partners", map[string]interface{}{"name": "Incomplete"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "Email is required")
	})
}

func TestListPartnersEndpoint(t *testing.T) {
	t.Run("pagination reports ceil of total over limit", func(t *testing.T) {
		env := newTestEnv()
		for i := 0; i < 15; i++ {
			env.seedPartner(t,
				fmt.Sprintf("Partner %02d", i),
				fmt.Sprintf("partner%02d@example.com", i),
				fmt.Sprintf("98765432%02d", i),
			)
		}

		code, resp := env.do(t, http.MethodGet, "/partners?page=2&limit=10", nil)

		assert.Equal(t, http.StatusOK, code)
		require.NotNil(t, resp.Pagination)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, int64(15), resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.Pages)

		var partners []models.ReferralPartner
		require.NoError(t, json.Unmarshal(resp.Data, &partners))
		assert.Len(t, partners, 5)
	})

	t.Run("all=true omits the pagination block", func(t *testing.T) {
		env := newTestEnv()
		env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")

		code, resp := env.do(t, http.MethodGet, "/partners?all=true", nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Nil(t, resp.Pagination)
	})

	t.Run("search narrows the listing", func(t *testing.T) {
		env := newTestEnv()
		env.seedPartner(t, "Asha Nair", "asha.nair@gmail.com", "9876543210")
		env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876500000")

		_, resp := env.do(t, http.MethodGet, "/partners?search=gmail", nil)

		var partners []models.ReferralPartner
		require.NoError(t, json.Unmarshal(resp.Data, &partners))
		require.Len(t, partners, 1)
		assert.Equal(t, "Asha Nair", partners[0].Name)
	})
}

func TestGetPartnerEndpoint(t *testing.T) {
	t.Run("unknown id answers 404", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodGet, "/partners/"+primitive.NewObjectID().Hex(), nil)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Referral partner not found", resp.Error)
	})

	t.Run("malformed id answers 400", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodGet, "/partners/not-a-hex-id", nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid ID format", resp.Error)
	})
}

func TestUpdatePartnerStatusEndpoint(t *testing.T) {
	t.Run("valid status answers 200", func(t *testing.T) {
		env := newTestEnv()
		partner := env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")

		code, resp := env.do(t, http.MethodPatch, "/partners/"+partner.ID.Hex()+"/status",
			map[string]string{"status": models.PartnerStatusInactive})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Referral partner status updated successfully", resp.Message)
	})

	t.Run("unknown status answers 400", func(t *testing.T) {
		env := newTestEnv()
		partner := env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")

		code, resp := env.do(t, http.MethodPatch, "/partners/"+partner.ID.Hex()+"/status",
			map[string]string{"status": "Suspended"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
	})
}

func TestDeletePartnerEndpoint(t *testing.T) {
	env := newTestEnv()
	partner := env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")

	code, resp := env.do(t, http.MethodDelete, "/partners/"+partner.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Referral partner deleted successfully", resp.Message)

	code, _ = env.do(t, http.MethodGet, "/partners/"+partner.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetPartnerStatisticsEndpoint(t *testing.T) {
	env := newTestEnv()
	partner := env.seedPartner(t, "Global Studies", "contact@globalstudies.com", "9876543210")
	course := env.seedCategory(t, "Engineering", models.CategoryTypeCourse)
	country := env.seedCategory(t, "Canada", models.CategoryTypeCountry)

	for i, lead := range []map[string]interface{}{
		{"commissionAmount": 100, "commissionStatus": models.CommissionStatusPaid, "status": models.LeadStatusAdmitted},
		{"commissionAmount": 50, "commissionStatus": models.CommissionStatusPending, "status": models.LeadStatusInProgress},
	} {
		lead["name"] = fmt.Sprintf("Student %d", i)
		lead["email"] = fmt.Sprintf("student%d@example.com", i)
		lead["phone"] = "9123456789"
		lead["courseApplied"] = course.ID
		lead["countryPreference"] = country.ID
		lead["referralPartner"] = partner.ID
		code, _ := env.do(t, http.MethodPost, "/leads", lead)
		require.Equal(t, http.StatusCreated, code)
	}

	code, resp := env.do(t, http.MethodGet, "/partners/"+partner.ID.Hex()+"/statistics", nil)
	assert.Equal(t, http.StatusOK, code)

	var stats models.PartnerStatistics
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 2, stats.TotalLeads)
	assert.Equal(t, float64(150), stats.TotalCommission)
	assert.Equal(t, float64(100), stats.PaidCommission)
	assert.Equal(t, float64(50), stats.PendingCommission)
}
