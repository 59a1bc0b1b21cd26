package domain

import "time"

type Requirement struct {
	ID           int64
	Title        string
	Description  string
	Priority     Priority
	Status       Status
	DueDate      *time.Time
	ClientID     int64
	CategoryID   int64
	TeamMemberID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequirementView is a requirement with the display names of the records
// it references. The names are populated only when the read was made with
// IncludeRelations.
type RequirementView struct {
	Requirement
	ClientName     string
	CategoryName   string
	TeamMemberName string
}

type RequirementInput struct {
	Title        string
	Description  string
	Priority     Priority
	Status       Status
	DueDate      *time.Time
	ClientID     int64
	CategoryID   int64
	TeamMemberID *int64
}

// RequirementPatch is a partial update. Nil fields are unchanged;
// ClearDueDate and ClearTeamMember null out the optional fields.
type RequirementPatch struct {
	Title           *string
	Description     *string
	Priority        *Priority
	Status          *Status
	DueDate         *time.Time
	ClearDueDate    bool
	ClientID        *int64
	CategoryID      *int64
	TeamMemberID    *int64
	ClearTeamMember bool
}

// Validate checks the input and fills in the Medium / To Do defaults.
func (in *RequirementInput) Validate() error {
	var errs fieldErrors
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}
	validateRequirementFields(&errs, &in.Title, &in.Description, &in.Priority, &in.Status)
	if in.ClientID <= 0 {
		errs.add("client_id", "client_id is required")
	}
	if in.CategoryID <= 0 {
		errs.add("category_id", "category_id is required")
	}
	if in.TeamMemberID != nil && *in.TeamMemberID <= 0 {
		errs.add("team_member_id", "team_member_id must be positive")
	}
	return errs.err()
}

func (p RequirementPatch) Validate() error {
	var errs fieldErrors
	validateRequirementFields(&errs, p.Title, p.Description, p.Priority, p.Status)
	if p.ClientID != nil && *p.ClientID <= 0 {
		errs.add("client_id", "client_id must be positive")
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		errs.add("category_id", "category_id must be positive")
	}
	if p.TeamMemberID != nil && *p.TeamMemberID <= 0 {
		errs.add("team_member_id", "team_member_id must be positive")
	}
	if p.TeamMemberID != nil && p.ClearTeamMember {
		errs.add("team_member_id", "cannot set and clear team_member_id together")
	}
	if p.DueDate != nil && p.ClearDueDate {
		errs.add("due_date", "cannot set and clear due_date together")
	}
	return errs.err()
}

func validateRequirementFields(errs *fieldErrors, title, description *string, priority *Priority, status *Status) {
	if title != nil && errs.required("title", *title) {
		errs.maxLen("title", *title, 200)
	}
	if description != nil {
		errs.maxLen("description", *description, 2000)
	}
	if priority != nil && !priority.Valid() {
		errs.add("priority", "priority must be one of Low, Medium, High")
	}
	if status != nil && !status.Valid() {
		errs.add("status", "status must be one of To Do, In Progress, Done")
	}
}

// References returns the foreign keys carried by the input.
func (in RequirementInput) References() References {
	return References{
		Client:     &in.ClientID,
		Category:   &in.CategoryID,
		TeamMember: in.TeamMemberID,
	}
}

// References returns only the foreign keys the patch changes to a new value.
func (p RequirementPatch) References() References {
	return References{
		Client:     p.ClientID,
		Category:   p.CategoryID,
		TeamMember: p.TeamMemberID,
	}
}

// NewRequirement builds an unsaved Requirement; created_at and updated_at
// are both set to now.
func NewRequirement(in RequirementInput, now time.Time) *Requirement {
	r := &Requirement{
		Title:        in.Title,
		Description:  in.Description,
		Priority:     in.Priority,
		Status:       in.Status,
		ClientID:     in.ClientID,
		CategoryID:   in.CategoryID,
		TeamMemberID: in.TeamMemberID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.DueDate != nil {
		d := CalendarDate(*in.DueDate)
		r.DueDate = &d
	}
	return r
}

// Apply copies the supplied patch fields onto r. It does not touch UpdatedAt.
func (r *Requirement) Apply(p RequirementPatch) {
	setIfPresent(&r.Title, p.Title)
	setIfPresent(&r.Description, p.Description)
	setIfPresent(&r.Priority, p.Priority)
	setIfPresent(&r.Status, p.Status)
	setIfPresent(&r.ClientID, p.ClientID)
	setIfPresent(&r.CategoryID, p.CategoryID)

	switch {
	case p.ClearDueDate:
		r.DueDate = nil
	case p.DueDate != nil:
		d := CalendarDate(*p.DueDate)
		r.DueDate = &d
	}

	switch {
	case p.ClearTeamMember:
		r.TeamMemberID = nil
	case p.TeamMemberID != nil:
		id := *p.TeamMemberID
		r.TeamMemberID = &id
	}
}

// Touch advances UpdatedAt to now, or one nanosecond past the previous
// value when the clock has not moved forward.
func (r *Requirement) Touch(now time.Time) {
	if !now.After(r.UpdatedAt) {
		now = r.UpdatedAt.Add(time.Nanosecond)
	}
	r.UpdatedAt = now
}

// IsOverdue reports whether the due date is strictly before the calendar
// date of now and the requirement is not done.
func (r *Requirement) IsOverdue(now time.Time) bool {
	if r.DueDate == nil || r.Status == StatusDone {
		return false
	}
	return r.DueDate.Before(CalendarDate(now))
}
