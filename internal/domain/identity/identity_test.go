package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-service/internal/domain/user"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		wantErr   bool
	}{
		{"canonical lowercase", "5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e", false},
		{"canonical uppercase", "5F2B0C1D-9D55-4C3E-8F33-0A4F2A1B9C7E", false},
		{"empty", "", true},
		{"too short", "5f2b0c1d-9d55", true},
		{"not hex", "zzzz0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e", true},
		{"missing hyphens", "5f2b0c1d9d554c3e8f330a4f2a1b9c7e", true},
		{"urn form", "urn:uuid:5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e", true},
		{"braced form", "{5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e}", true},
		{"trailing junk", "5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7ex", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Validate(tt.candidate)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, user.ErrInvalidIdentifier))
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, id)
		})
	}
}
