package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// Plan is a validated seed ready for persistence. Requirements still name
// their references; the import service resolves them inside its transaction.
// Declared and referenced names are both trimmed of surrounding space.
type Plan struct {
	Categories   []domain.CategoryInput
	TeamMembers  []domain.TeamMemberInput
	Clients      []domain.ClientInput
	Requirements []RequirementDraft
}

// RequirementDraft is a requirement input whose ids are not yet known.
type RequirementDraft struct {
	Input      domain.RequirementInput
	Client     string
	Category   string
	TeamMember string
}

// Convert transforms a validated SeedSchema into a Plan.
// Call ValidateSeedSchema first; Convert assumes the schema is valid.
func Convert(schema *SeedSchema) (*Plan, error) {
	plan := &Plan{
		Categories:   make([]domain.CategoryInput, 0, len(schema.Categories)),
		TeamMembers:  make([]domain.TeamMemberInput, 0, len(schema.TeamMembers)),
		Clients:      make([]domain.ClientInput, 0, len(schema.Clients)),
		Requirements: make([]RequirementDraft, 0, len(schema.Requirements)),
	}
	for _, c := range schema.Categories {
		plan.Categories = append(plan.Categories, domain.CategoryInput{Name: strings.TrimSpace(c.Name)})
	}
	for _, m := range schema.TeamMembers {
		plan.TeamMembers = append(plan.TeamMembers, domain.TeamMemberInput{Name: strings.TrimSpace(m.Name)})
	}
	for _, c := range schema.Clients {
		plan.Clients = append(plan.Clients, clientInput(c))
	}
	for i, r := range schema.Requirements {
		draft, err := requirementDraft(r)
		if err != nil {
			return nil, fmt.Errorf("requirements[%d].%w", i, err)
		}
		plan.Requirements = append(plan.Requirements, draft)
	}
	return plan, nil
}

// clientInput trims the agency name, which requirements refer to.
func clientInput(c ClientImport) domain.ClientInput {
	return domain.ClientInput{
		AgencyName:    strings.TrimSpace(c.AgencyName),
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Website:       c.Website,
	}
}

// requirementDraft parses the enumerations and due date of r. Errors name
// the offending key without a prefix.
func requirementDraft(r RequirementImport) (RequirementDraft, error) {
	draft := RequirementDraft{
		Input: domain.RequirementInput{
			Title:       r.Title,
			Description: r.Description,
		},
		Client:     strings.TrimSpace(r.Client),
		Category:   strings.TrimSpace(r.Category),
		TeamMember: strings.TrimSpace(r.TeamMember),
	}
	if r.Priority != "" {
		p, err := domain.ParsePriority(r.Priority)
		if err != nil {
			return draft, fmt.Errorf("priority: %w", err)
		}
		draft.Input.Priority = p
	}
	if r.Status != "" {
		s, err := domain.ParseStatus(r.Status)
		if err != nil {
			return draft, fmt.Errorf("status: %w", err)
		}
		draft.Input.Status = s
	}
	if r.DueDate != "" {
		d, err := domain.ParseDate(r.DueDate)
		if err != nil {
			return draft, fmt.Errorf("due_date: %w", err)
		}
		draft.Input.DueDate = &d
	}
	return draft, nil
}
