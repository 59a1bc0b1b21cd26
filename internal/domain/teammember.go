package domain

import "time"

type TeamMember struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type TeamMemberInput struct {
	Name string
}

type TeamMemberPatch struct {
	Name *string
}

func (in TeamMemberInput) Validate() error {
	var errs fieldErrors
	validateName(&errs, &in.Name)
	return errs.err()
}

func (p TeamMemberPatch) Validate() error {
	var errs fieldErrors
	validateName(&errs, p.Name)
	return errs.err()
}

func (m *TeamMember) Apply(p TeamMemberPatch) {
	setIfPresent(&m.Name, p.Name)
}
