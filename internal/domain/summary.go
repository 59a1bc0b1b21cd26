package domain

// DeleteOutcome distinguishes why a delete did or did not happen. The zero
// value is not a valid outcome.
type DeleteOutcome int

const (
	DeleteOK DeleteOutcome = iota + 1
	DeleteNotFound
	DeleteBlocked
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteOK:
		return "deleted"
	case DeleteNotFound:
		return "not_found"
	case DeleteBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// DeleteResult is the tagged result of a delete. Ok collapses it to the
// plain boolean callers may rely on.
type DeleteResult struct {
	Outcome DeleteOutcome
	// References is the number of requirements that blocked the delete.
	References int
}

func (r DeleteResult) Ok() bool { return r.Outcome == DeleteOK }

// Err maps a refused delete to ErrNotFound or ErrDeletionBlocked.
func (r DeleteResult) Err() error {
	switch r.Outcome {
	case DeleteNotFound:
		return ErrNotFound
	case DeleteBlocked:
		return ErrDeletionBlocked
	}
	return nil
}

// Summary is the dashboard aggregate over all requirements. Keys with zero
// occurrences are absent from ByStatus and ByPriority.
type Summary struct {
	Total      int
	ByStatus   map[Status]int
	ByPriority map[Priority]int
	Overdue    int
}

// Dashboard combines the summary with the headline record counts and the
// most recently created requirements.
type Dashboard struct {
	Summary       Summary
	ClientCount   int
	CategoryCount int
	MemberCount   int
	Recent        []*RequirementView
}
