package domain

import "time"

type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type CategoryInput struct {
	Name string
}

type CategoryPatch struct {
	Name *string
}

func (in CategoryInput) Validate() error {
	var errs fieldErrors
	validateName(&errs, &in.Name)
	return errs.err()
}

func (p CategoryPatch) Validate() error {
	var errs fieldErrors
	validateName(&errs, p.Name)
	return errs.err()
}

func (c *Category) Apply(p CategoryPatch) {
	setIfPresent(&c.Name, p.Name)
}

// validateName applies the shared rule for category and team member names.
func validateName(errs *fieldErrors, name *string) {
	if name != nil && errs.required("name", *name) {
		errs.maxLen("name", *name, 100)
	}
}
