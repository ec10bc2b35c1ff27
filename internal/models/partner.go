package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner types
const (
	PartnerTypeAgency     = "Agency"
	PartnerTypeIndividual = "Individual"
)

// Partner statuses
const (
	PartnerStatusActive   = "Active"
	PartnerStatusInactive = "Inactive"
)

// ReferralPartner represents an agency or individual that refers student leads
type ReferralPartner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	District    string             `bson:"district" json:"district"`
	Country     string             `bson:"country" json:"country"`
	Pincode     string             `bson:"pincode" json:"pincode"`
	PartnerType string             `bson:"partnerType" json:"partnerType"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PartnerStatistics holds the commission and status aggregates for one partner's leads
type PartnerStatistics struct {
	TotalLeads        int            `json:"totalLeads"`
	TotalCommission   float64        `json:"totalCommission"`
	PaidCommission    float64        `json:"paidCommission"`
	PendingCommission float64        `json:"pendingCommission"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
}
