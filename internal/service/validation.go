package service

import (
	"fmt"

	"github.com/maxviazov/bookstore-service/internal/repository"
)

// validatePageRequest enforces page >= 0, 1 <= size <= MaxPageSize and an
// offset (page*size) that does not overflow.
func validatePageRequest(p repository.PageRequest) error {
	var ferrs []FieldError
	if p.Page < 0 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 0"})
	}
	switch {
	case p.Size < 1:
		ferrs = append(ferrs, FieldError{Field: "size", Message: "must be >= 1"})
	case p.Size > repository.MaxPageSize:
		ferrs = append(ferrs, FieldError{Field: "size", Message: fmt.Sprintf("must be <= %d", repository.MaxPageSize)})
	}
	if len(ferrs) == 0 && !p.OffsetFits() {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "too large for the requested size"})
	}
	return NewInvalidInputError(ferrs)
}
