package domain

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

type Client struct {
	ID            int64
	AgencyName    string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Website       string
	CreatedAt     time.Time
}

// ClientInput carries the fields of a new client.
type ClientInput struct {
	AgencyName    string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Website       string
}

// ClientPatch is a partial update; nil fields are left unchanged.
type ClientPatch struct {
	AgencyName    *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Website       *string
}

func (in ClientInput) Validate() error {
	var errs fieldErrors
	validateClientFields(&errs, &in.AgencyName, &in.ContactPerson, &in.Email, &in.Phone, &in.Address, &in.Website)
	return errs.err()
}

func (p ClientPatch) Validate() error {
	var errs fieldErrors
	validateClientFields(&errs, p.AgencyName, p.ContactPerson, p.Email, p.Phone, p.Address, p.Website)
	return errs.err()
}

// validateClientFields checks each supplied (non-nil) field.
func validateClientFields(errs *fieldErrors, agency, contact, email, phone, address, website *string) {
	if agency != nil && errs.required("agency_name", *agency) {
		errs.maxLen("agency_name", *agency, 200)
	}
	if contact != nil && errs.required("contact_person", *contact) {
		errs.maxLen("contact_person", *contact, 100)
	}
	if email != nil && errs.required("email", *email) {
		errs.maxLen("email", *email, 255)
		if !emailPattern.MatchString(*email) {
			errs.add("email", "email must be a valid address")
		}
	}
	if phone != nil {
		errs.maxLen("phone", *phone, 20)
	}
	if address != nil {
		errs.maxLen("address", *address, 500)
	}
	if website != nil {
		errs.maxLen("website", *website, 255)
	}
}

// NewClient builds an unsaved Client from validated input.
func NewClient(in ClientInput, now time.Time) *Client {
	return &Client{
		AgencyName:    in.AgencyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Website:       in.Website,
		CreatedAt:     now,
	}
}

// Apply copies the supplied patch fields onto c.
func (c *Client) Apply(p ClientPatch) {
	setIfPresent(&c.AgencyName, p.AgencyName)
	setIfPresent(&c.ContactPerson, p.ContactPerson)
	setIfPresent(&c.Email, p.Email)
	setIfPresent(&c.Phone, p.Phone)
	setIfPresent(&c.Address, p.Address)
	setIfPresent(&c.Website, p.Website)
}
