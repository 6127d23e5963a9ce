package bank

import (
	"fmt"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// InsufficientBankError reports that a bank scope cannot satisfy the
// requested category plan. The whole sample call fails; no partial paper
// is ever offered.
type InsufficientBankError struct {
	Section   model.Section
	Requested int
	Available int
}

func (e *InsufficientBankError) Error() string {
	return fmt.Sprintf("insufficient questions in section %s: requested %d, available %d",
		e.Section, e.Requested, e.Available)
}
