package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses
const (
	LeadStatusNew        = "New"
	LeadStatusInProgress = "In Progress"
	LeadStatusApplied    = "Applied"
	LeadStatusAdmitted   = "Admitted"
	LeadStatusRejected   = "Rejected"
)

// Commission statuses
const (
	CommissionStatusPending = "Pending"
	CommissionStatusPaid    = "Paid"
)

// LeadStatuses lists every valid lead status, in display order
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusInProgress,
	LeadStatusApplied,
	LeadStatusAdmitted,
	LeadStatusRejected,
}

// StudentLead represents a prospective student referred by a partner.
// CourseApplied and CountryPreference reference StudentCategory documents,
// ReferralPartner references a ReferralPartner document. The references are
// weak: they are stored as plain ids and resolved at read time.
type StudentLead struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	CourseApplied     primitive.ObjectID `bson:"courseApplied" json:"courseApplied"`
	CountryPreference primitive.ObjectID `bson:"countryPreference" json:"countryPreference"`
	Status            string             `bson:"status" json:"status"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	ReferralPartner   primitive.ObjectID `bson:"referralPartner" json:"referralPartner"`
	CommissionAmount  float64            `bson:"commissionAmount" json:"commissionAmount"`
	CommissionStatus  string             `bson:"commissionStatus" json:"commissionStatus"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StudentLeadView is a StudentLead with its references resolved to display
// names. A name stays empty when the referenced document no longer exists.
type StudentLeadView struct {
	StudentLead
	CourseAppliedName     string `json:"courseAppliedName,omitempty"`
	CountryPreferenceName string `json:"countryPreferenceName,omitempty"`
	ReferralPartnerName   string `json:"referralPartnerName,omitempty"`
}

// DashboardStats aggregates headline numbers for the admin dashboard
type DashboardStats struct {
	TotalPartners  int64             `json:"totalPartners"`
	ActivePartners int64             `json:"activePartners"`
	TotalLeads     int               `json:"totalLeads"`
	Commission     PartnerStatistics `json:"commission"`
}
