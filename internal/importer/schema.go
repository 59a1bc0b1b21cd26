package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedSchema is the top-level YAML structure of a seed file. JSON files
// parse too, JSON being a subset of YAML.
type SeedSchema struct {
	Categories   []CategoryImport    `yaml:"categories" json:"categories"`
	TeamMembers  []TeamMemberImport  `yaml:"team_members" json:"team_members"`
	Clients      []ClientImport      `yaml:"clients" json:"clients"`
	Requirements []RequirementImport `yaml:"requirements" json:"requirements"`
}

type CategoryImport struct {
	Name string `yaml:"name" json:"name"`
}

type TeamMemberImport struct {
	Name string `yaml:"name" json:"name"`
}

type ClientImport struct {
	AgencyName    string `yaml:"agency_name" json:"agency_name"`
	ContactPerson string `yaml:"contact_person" json:"contact_person"`
	Email         string `yaml:"email" json:"email"`
	Phone         string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Address       string `yaml:"address,omitempty" json:"address,omitempty"`
	Website       string `yaml:"website,omitempty" json:"website,omitempty"`
}

// RequirementImport references its client, category and team member by
// name: agency name, category name and member name respectively.
type RequirementImport struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Client      string `yaml:"client" json:"client"`
	Category    string `yaml:"category" json:"category"`
	TeamMember  string `yaml:"team_member,omitempty" json:"team_member,omitempty"`
	Priority    string `yaml:"priority,omitempty" json:"priority,omitempty"`
	Status      string `yaml:"status,omitempty" json:"status,omitempty"`
	DueDate     string `yaml:"due_date,omitempty" json:"due_date,omitempty"`
}

// LoadSeedSchema reads and parses a seed file.
func LoadSeedSchema(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeedSchema(data)
}

// ParseSeedSchema parses seed file contents. Unknown keys are rejected so
// typos surface instead of being dropped.
func ParseSeedSchema(data []byte) (*SeedSchema, error) {
	var schema SeedSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		// An empty file holds no document at all.
		if errors.Is(err, io.EOF) {
			return &schema, nil
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}
