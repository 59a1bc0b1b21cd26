package domain

// References carries the foreign keys of a requirement write. A nil field
// is not checked.
type References struct {
	Client     *int64
	Category   *int64
	TeamMember *int64
}

// Reference field names, as reported in ReferenceError.Field.
const (
	FieldClientID     = "client_id"
	FieldCategoryID   = "category_id"
	FieldTeamMemberID = "team_member_id"
)

// Include selects which related records a requirement read joins in.
type Include int

const (
	IncludeNone Include = iota
	IncludeRelations
)

// Counted pairs a record with the number of requirements referencing it.
type Counted[T any] struct {
	Item             T
	RequirementCount int
}
