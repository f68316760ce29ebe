package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpan     = errors.New("end date must not precede start date")
	ErrBelowMinSpan    = errors.New("task span must be at least one day")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrSelfDependency  = errors.New("task cannot depend on itself")
	ErrDuplicateDep    = errors.New("dependency already exists")
	ErrDependencyCycle = errors.New("dependency would create a cycle")
	ErrParentCycle     = errors.New("move would create a parent cycle")
	ErrEmptyName       = errors.New("name required")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
