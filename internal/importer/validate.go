package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

// ValidateSeedSchema checks the seed for errors before conversion and
// returns all of them. Name references are not resolved here; they may
// point at records that already exist in the store.
func ValidateSeedSchema(schema *SeedSchema) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, c := range schema.Categories {
		prefix := fmt.Sprintf("categories[%d]", i)
		name := strings.TrimSpace(c.Name)
		errs = append(errs, fieldErrs(prefix, domain.CategoryInput{Name: name}.Validate())...)
		if name != "" && seen[name] {
			errs = append(errs, fmt.Errorf("%s: duplicate category name %q", prefix, name))
		}
		seen[name] = true
	}

	seen = make(map[string]bool)
	for i, m := range schema.TeamMembers {
		prefix := fmt.Sprintf("team_members[%d]", i)
		name := strings.TrimSpace(m.Name)
		errs = append(errs, fieldErrs(prefix, domain.TeamMemberInput{Name: name}.Validate())...)
		if name != "" && seen[name] {
			errs = append(errs, fmt.Errorf("%s: duplicate team member name %q", prefix, name))
		}
		seen[name] = true
	}

	seen = make(map[string]bool)
	for i, c := range schema.Clients {
		prefix := fmt.Sprintf("clients[%d]", i)
		in := clientInput(c)
		errs = append(errs, fieldErrs(prefix, in.Validate())...)
		if in.AgencyName != "" && seen[in.AgencyName] {
			errs = append(errs, fmt.Errorf("%s: duplicate agency name %q", prefix, in.AgencyName))
		}
		seen[in.AgencyName] = true
	}

	for i, r := range schema.Requirements {
		errs = append(errs, validateRequirement(fmt.Sprintf("requirements[%d]", i), r)...)
	}

	return errs
}

func validateRequirement(prefix string, r RequirementImport) []error {
	var errs []error

	if strings.TrimSpace(r.Client) == "" {
		errs = append(errs, fmt.Errorf("%s.client is required", prefix))
	}
	if strings.TrimSpace(r.Category) == "" {
		errs = append(errs, fmt.Errorf("%s.category is required", prefix))
	}

	draft, err := requirementDraft(r)
	if err != nil {
		return append(errs, fmt.Errorf("%s.%w", prefix, err))
	}
	// Placeholder ids let the shared field rules run; names resolve later.
	in := draft.Input
	in.ClientID, in.CategoryID = 1, 1
	return append(errs, fieldErrs(prefix, in.Validate())...)
}

// fieldErrs flattens a *domain.ValidationError into prefixed errors.
func fieldErrs(prefix string, err error) []error {
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return []error{fmt.Errorf("%s: %w", prefix, err)}
	}
	out := make([]error, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, fmt.Errorf("%s.%s: %s", prefix, f.Field, f.Message))
	}
	return out
}
