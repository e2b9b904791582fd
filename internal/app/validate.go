package app

import (
	"fmt"

	"github.com/Anuragt1104/solmentor/internal/domain"
)

func validateIdentity(owner string) error {
	if owner == "" {
		return fmt.Errorf("%w: owner identity is empty", domain.ErrInvalidArgument)
	}
	return nil
}

// validateBoundedText enforces the byte budget only; empty text is legal,
// as it is for the stored record layout.
func validateBoundedText(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidArgument, field, max)
	}
	return nil
}

// checkOwnership confirms the caller identity matches the record owner.
// Addresses are derived from the caller, so a mismatch only happens when a
// record was written under a different identity than its address seeds.
func checkOwnership(recordOwner, caller string) error {
	if recordOwner != caller {
		return fmt.Errorf("%w: profile owned by %s", domain.ErrUnauthorized, recordOwner)
	}
	return nil
}
