package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{4,10}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// PartnerService handles referral-partner business logic
type PartnerService struct {
	partnerRepo repositories.ReferralPartnerRepository
	leadRepo    repositories.StudentLeadRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerRepo repositories.ReferralPartnerRepository, leadRepo repositories.StudentLeadRepository) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		leadRepo:    leadRepo,
	}
}

func validatePartner(p *models.ReferralPartner) error {
	var msgs []string
	if p.Name == "" {
		msgs = append(msgs, "Name is required")
	} else if len(p.Name) > 100 {
		msgs = append(msgs, "Name must be at most 100 characters")
	}
	if p.Email == "" {
		msgs = append(msgs, "Email is required")
	} else if !emailPattern.MatchString(p.Email) {
		msgs = append(msgs, "Email is invalid")
	}
	if p.Phone == "" {
		msgs = append(msgs, "Phone number is required")
	} else if !phonePattern.MatchString(p.Phone) {
		msgs = append(msgs, "Phone number must be 10 to 15 digits")
	}
	if p.Address == "" {
		msgs = append(msgs, "Address is required")
	} else if len(p.Address) > 200 {
		msgs = append(msgs, "Address must be at most 200 characters")
	}
	for _, f := range []struct{ name, value string }{
		{"City", p.City},
		{"State", p.State},
		{"District", p.District},
		{"Country", p.Country},
	} {
		if f.value == "" {
			msgs = append(msgs, f.name+" is required")
		} else if len(f.value) > 50 {
			msgs = append(msgs, f.name+" must be at most 50 characters")
		}
	}
	if p.Pincode == "" {
		msgs = append(msgs, "Pincode is required")
	} else if !pincodePattern.MatchString(p.Pincode) {
		msgs = append(msgs, "Pincode must be 4 to 10 digits")
	}
	if p.PartnerType != models.PartnerTypeAgency && p.PartnerType != models.PartnerTypeIndividual {
		msgs = append(msgs, "Partner type must be 'Agency' or 'Individual'")
	}
	if p.Status != models.PartnerStatusActive && p.Status != models.PartnerStatusInactive {
		msgs = append(msgs, "Status must be 'Active' or 'Inactive'")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// checkDuplicate rejects the write when another partner already holds the
// submitted email or phone. Email wins the report when both collide.
func (s *PartnerService) checkDuplicate(ctx context.Context, partner *models.ReferralPartner, excludeID *primitive.ObjectID) error {
	existing, err := s.partnerRepo.FindByEmailOrPhone(ctx, partner.Email, partner.Phone, excludeID)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	field := "phone"
	if existing.Email == partner.Email {
		field = "email"
	}
	return &DuplicateFieldError{Entity: "partner", Field: field}
}

// ListPartners retrieves partners matching search, newest first. total is only
// meaningful when all is false.
func (s *PartnerService) ListPartners(ctx context.Context, search string, page, limit int, all bool) ([]*models.ReferralPartner, int64, error) {
	partners, err := s.partnerRepo.Find(ctx, search, page, limit, all)
	if err != nil {
		return nil, 0, err
	}
	if all {
		return partners, int64(len(partners)), nil
	}
	total, err := s.partnerRepo.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

// GetPartner retrieves one partner by ID
func (s *PartnerService) GetPartner(ctx context.Context, id primitive.ObjectID) (*models.ReferralPartner, error) {
	return s.partnerRepo.FindByID(ctx, id)
}

// CreatePartner validates, checks uniqueness and persists a new partner.
// The email is folded to lowercase before both the check and the insert.
func (s *PartnerService) CreatePartner(ctx context.Context, partner *models.ReferralPartner) error {
	partner.Email = strings.ToLower(strings.TrimSpace(partner.Email))
	if err := validatePartner(partner); err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, partner, nil); err != nil {
		return err
	}
	return mapDuplicateKey(s.partnerRepo.Create(ctx, partner), "partner")
}

// UpdatePartner validates and replaces an existing partner. The partner's own
// record is excluded from the uniqueness check so an unchanged email or phone
// does not trip a false duplicate.
func (s *PartnerService) UpdatePartner(ctx context.Context, partner *models.ReferralPartner) error {
	partner.Email = strings.ToLower(strings.TrimSpace(partner.Email))
	if err := validatePartner(partner); err != nil {
		return err
	}
	existing, err := s.partnerRepo.FindByID(ctx, partner.ID)
	if err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, partner, &partner.ID); err != nil {
		return err
	}
	partner.CreatedAt = existing.CreatedAt
	return mapDuplicateKey(s.partnerRepo.Update(ctx, partner), "partner")
}

// UpdateStatus toggles a partner's status without touching the rest of the document
func (s *PartnerService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != models.PartnerStatusActive && status != models.PartnerStatusInactive {
		return &ValidationError{Messages: []string{"Status must be 'Active' or 'Inactive'"}}
	}
	return s.partnerRepo.UpdateStatus(ctx, id, status)
}

// DeletePartner removes a partner permanently. Leads referencing the partner
// are not cascaded; their reference becomes dangling and read paths resolve it
// to an empty name.
func (s *PartnerService) DeletePartner(ctx context.Context, id primitive.ObjectID) error {
	return s.partnerRepo.Delete(ctx, id)
}

// GetStatistics recomputes the commission and status aggregates over all of
// one partner's leads. Nothing is cached; every call folds the current leads.
func (s *PartnerService) GetStatistics(ctx context.Context, id primitive.ObjectID) (*models.PartnerStatistics, error) {
	if _, err := s.partnerRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	leads, err := s.leadRepo.FindByPartnerID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(leads), nil
}
