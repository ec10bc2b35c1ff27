package services

import (
	"context"
	"strings"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadService is the read-side aggregator and write-side guard for student
// leads. Listings come back with course, country and partner references
// resolved to display names; a reference whose target was deleted resolves to
// an empty name rather than an error.
type LeadService struct {
	leadRepo     repositories.StudentLeadRepository
	partnerRepo  repositories.ReferralPartnerRepository
	categoryRepo repositories.CategoryRepository
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo repositories.StudentLeadRepository, partnerRepo repositories.ReferralPartnerRepository, categoryRepo repositories.CategoryRepository) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		partnerRepo:  partnerRepo,
		categoryRepo: categoryRepo,
	}
}

// ListLeadsOptions narrows and pages a lead listing
type ListLeadsOptions struct {
	Search            string
	ReferralPartnerID *primitive.ObjectID
	Page              int
	Limit             int
	All               bool
}

func validateLead(l *models.StudentLead) error {
	var msgs []string
	if l.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if l.Email == "" {
		msgs = append(msgs, "Email is required")
	} else if !emailPattern.MatchString(l.Email) {
		msgs = append(msgs, "Email is invalid")
	}
	if l.Phone == "" {
		msgs = append(msgs, "Phone number is required")
	}
	if l.CourseApplied.IsZero() {
		msgs = append(msgs, "Course Applied is required")
	}
	if l.CountryPreference.IsZero() {
		msgs = append(msgs, "Country Preference is required")
	}
	if l.ReferralPartner.IsZero() {
		msgs = append(msgs, "Referral Partner is required")
	}
	validStatus := false
	for _, st := range models.LeadStatuses {
		if l.Status == st {
			validStatus = true
			break
		}
	}
	if !validStatus {
		msgs = append(msgs, "Status is invalid")
	}
	if l.CommissionAmount < 0 {
		msgs = append(msgs, "Commission amount cannot be negative")
	}
	if l.CommissionStatus != models.CommissionStatusPending && l.CommissionStatus != models.CommissionStatusPaid {
		msgs = append(msgs, "Commission Status is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// checkDuplicate enforces email-only uniqueness for leads, excluding the
// record itself on updates. Phone duplicates are allowed.
func (s *LeadService) checkDuplicate(ctx context.Context, lead *models.StudentLead, excludeID *primitive.ObjectID) error {
	_, err := s.leadRepo.FindByEmail(ctx, lead.Email, excludeID)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	return &DuplicateFieldError{Entity: "student", Field: "email"}
}

// resolveReferences joins a batch of leads against the partner and category
// collections and attaches display names. A reference that no longer resolves
// leaves the name empty; only store failures abort.
func (s *LeadService) resolveReferences(ctx context.Context, leads []*models.StudentLead) ([]*models.StudentLeadView, error) {
	categoryIDSet := make(map[primitive.ObjectID]struct{})
	partnerIDSet := make(map[primitive.ObjectID]struct{})
	for _, lead := range leads {
		categoryIDSet[lead.CourseApplied] = struct{}{}
		categoryIDSet[lead.CountryPreference] = struct{}{}
		partnerIDSet[lead.ReferralPartner] = struct{}{}
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(categoryIDSet))
	for id := range categoryIDSet {
		categoryIDs = append(categoryIDs, id)
	}
	partnerIDs := make([]primitive.ObjectID, 0, len(partnerIDSet))
	for id := range partnerIDSet {
		partnerIDs = append(partnerIDs, id)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	partners, err := s.partnerRepo.FindByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[primitive.ObjectID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	partnerNames := make(map[primitive.ObjectID]string, len(partners))
	for _, p := range partners {
		partnerNames[p.ID] = p.Name
	}

	views := make([]*models.StudentLeadView, 0, len(leads))
	for _, lead := range leads {
		views = append(views, &models.StudentLeadView{
			StudentLead:           *lead,
			CourseAppliedName:     categoryNames[lead.CourseApplied],
			CountryPreferenceName: categoryNames[lead.CountryPreference],
			ReferralPartnerName:   partnerNames[lead.ReferralPartner],
		})
	}
	return views, nil
}

// ListLeads retrieves leads matching opts, newest first, with references
// resolved. The search string matches name, email, phone and the display
// names of the course and country categories; category names are folded into
// the store query as matching ids so sorting, counting and slicing all happen
// against one consistent filter.
func (s *LeadService) ListLeads(ctx context.Context, opts ListLeadsOptions) ([]*models.StudentLeadView, int64, error) {
	filter := repositories.LeadFilter{
		Search:            opts.Search,
		ReferralPartnerID: opts.ReferralPartnerID,
	}
	if opts.Search != "" {
		ids, err := s.categoryRepo.FindIDsByName(ctx, opts.Search)
		if err != nil {
			return nil, 0, err
		}
		filter.SearchCategoryIDs = ids
	}

	leads, err := s.leadRepo.Find(ctx, filter, opts.Page, opts.Limit, opts.All)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.resolveReferences(ctx, leads)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// GetLead retrieves one lead with its references resolved. An unresolved
// reference is not an error; the caller sees an empty display name.
func (s *LeadService) GetLead(ctx context.Context, id primitive.ObjectID) (*models.StudentLeadView, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.resolveReferences(ctx, []*models.StudentLead{lead})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// CreateLead validates, checks email uniqueness and persists a new lead
func (s *LeadService) CreateLead(ctx context.Context, lead *models.StudentLead) error {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	if err := validateLead(lead); err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, lead, nil); err != nil {
		return err
	}
	return mapDuplicateKey(s.leadRepo.Create(ctx, lead), "student")
}

// UpdateLead validates and replaces an existing lead, excluding the lead
// itself from the email uniqueness check
func (s *LeadService) UpdateLead(ctx context.Context, lead *models.StudentLead) error {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	if err := validateLead(lead); err != nil {
		return err
	}
	existing, err := s.leadRepo.FindByID(ctx, lead.ID)
	if err != nil {
		return err
	}
	if err := s.checkDuplicate(ctx, lead, &lead.ID); err != nil {
		return err
	}
	lead.CreatedAt = existing.CreatedAt
	return mapDuplicateKey(s.leadRepo.Update(ctx, lead), "student")
}

// DeleteLead removes a lead permanently
func (s *LeadService) DeleteLead(ctx context.Context, id primitive.ObjectID) error {
	return s.leadRepo.Delete(ctx, id)
}

// ComputeStatistics folds a set of leads into commission and status
// aggregates. Every status key is present in the breakdown even at zero.
func ComputeStatistics(leads []*models.StudentLead) *models.PartnerStatistics {
	stats := &models.PartnerStatistics{
		TotalLeads:      len(leads),
		StatusBreakdown: make(map[string]int, len(models.LeadStatuses)),
	}
	for _, status := range models.LeadStatuses {
		stats.StatusBreakdown[status] = 0
	}
	for _, lead := range leads {
		stats.TotalCommission += lead.CommissionAmount
		if lead.CommissionStatus == models.CommissionStatusPaid {
			stats.PaidCommission += lead.CommissionAmount
		} else {
			stats.PendingCommission += lead.CommissionAmount
		}
		stats.StatusBreakdown[lead.Status]++
	}
	return stats
}
