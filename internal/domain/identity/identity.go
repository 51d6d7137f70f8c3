// Package identity validates caller-supplied record identifiers before
// they are allowed anywhere near persistence.
package identity

import (
	"github.com/google/uuid"

	"user-directory-service/internal/domain/user"
)

// canonical textual form: 8-4-4-4-12 hex groups
const uuidTextLen = 36

// Validate checks that candidate is a well-formed UUID in its canonical
// hyphenated form (case-insensitive) and returns the parsed value.
// uuid.Parse alone also admits URN and braced variants, which the wire
// format does not allow, hence the length gate.
func Validate(candidate string) (uuid.UUID, error) {
	if len(candidate) != uuidTextLen {
		return uuid.Nil, user.ErrInvalidIdentifier
	}
	id, err := uuid.Parse(candidate)
	if err != nil {
		return uuid.Nil, user.ErrInvalidIdentifier
	}
	return id, nil
}
