package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-directory-service/internal/domain/user"
	dtoUser "user-directory-service/internal/interface/msg/dto/user"
)

func strPtr(s string) *string { return &s }

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
		wantErrKeys  []string
	}{
		{"defaults on zero", 0, 0, 1, 10, nil},
		{"explicit values pass through", 2, 25, 2, 25, nil},
		{"max page size allowed", 1, 100, 1, 100, nil},
		{"negative page", -1, 10, -1, 10, []string{"page"}},
		{"page size over the cap", 1, 101, 1, 101, []string{"pageSize"}},
		{"page size negative", 1, -5, 1, -5, []string{"pageSize"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, errs := ValidatePagination(tt.page, tt.size)
			if tt.wantErrKeys == nil {
				require.Nil(t, errs)
				assert.Equal(t, tt.wantPage, page)
				assert.Equal(t, tt.wantPageSize, pageSize)
				return
			}
			for _, k := range tt.wantErrKeys {
				assert.Contains(t, errs, k)
			}
		})
	}
}

func TestDraftFromPayload(t *testing.T) {
	valid := dtoUser.CreatePayload{
		Username: "John.Doe",
		Email:    " John.Doe@Example.COM ",
		Password: "correct-horse-battery",
	}

	t.Run("normalizes username and email", func(t *testing.T) {
		draft, errs := DraftFromPayload(valid)
		require.Nil(t, errs)
		assert.Equal(t, "john.doe", draft.Username)
		assert.Equal(t, "john.doe@example.com", draft.Email)
		assert.Equal(t, "correct-horse-battery", draft.Password)
	})

	t.Run("case variants collapse to the same key", func(t *testing.T) {
		a, errs := DraftFromPayload(dtoUser.CreatePayload{Username: "JohnDoe", Email: "a@example.com", Password: "longenough"})
		require.Nil(t, errs)
		b, errs := DraftFromPayload(dtoUser.CreatePayload{Username: "johndoe", Email: "b@example.com", Password: "longenough"})
		require.Nil(t, errs)
		assert.Equal(t, a.Username, b.Username)
	})

	tests := []struct {
		name    string
		mutate  func(p *dtoUser.CreatePayload)
		wantKey string
	}{
		{"missing username", func(p *dtoUser.CreatePayload) { p.Username = "" }, "username"},
		{"username too short", func(p *dtoUser.CreatePayload) { p.Username = "ab" }, "username"},
		{"username too long", func(p *dtoUser.CreatePayload) {
			p.Username = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" // 33
		}, "username"},
		{"username with spaces inside", func(p *dtoUser.CreatePayload) { p.Username = "john doe" }, "username"},
		{"missing email", func(p *dtoUser.CreatePayload) { p.Email = "" }, "email"},
		{"bad email", func(p *dtoUser.CreatePayload) { p.Email = "not-an-email" }, "email"},
		{"missing password", func(p *dtoUser.CreatePayload) { p.Password = "" }, "password"},
		{"short password", func(p *dtoUser.CreatePayload) { p.Password = "1234567" }, "password"},
		{"unknown role", func(p *dtoUser.CreatePayload) { p.Roles = []string{"Root"} }, "roles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			_, errs := DraftFromPayload(p)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestPatchFromPayload(t *testing.T) {
	id := "5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e"

	t.Run("partial patch keeps untouched fields nil", func(t *testing.T) {
		patch, errs := PatchFromPayload(dtoUser.UpdatePayload{
			ID:    id,
			Email: strPtr("New.Mail@Example.com"),
		})
		require.Nil(t, errs)
		assert.Nil(t, patch.Username)
		assert.Nil(t, patch.Password)
		assert.Nil(t, patch.Roles)
		require.NotNil(t, patch.Email)
		assert.Equal(t, "new.mail@example.com", *patch.Email)
	})

	t.Run("roles patch", func(t *testing.T) {
		roles := []string{"User", "Moderator"}
		patch, errs := PatchFromPayload(dtoUser.UpdatePayload{ID: id, Roles: &roles})
		require.Nil(t, errs)
		require.NotNil(t, patch.Roles)
		assert.Equal(t, domain.Roles{domain.RoleUser, domain.RoleModerator}, *patch.Roles)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		_, errs := PatchFromPayload(dtoUser.UpdatePayload{ID: id})
		require.NotNil(t, errs)
		assert.Contains(t, errs, "patch")
	})

	tests := []struct {
		name    string
		payload dtoUser.UpdatePayload
		wantKey string
	}{
		{"bad username", dtoUser.UpdatePayload{ID: id, Username: strPtr("x")}, "username"},
		{"bad email", dtoUser.UpdatePayload{ID: id, Email: strPtr("nope")}, "email"},
		{"short password", dtoUser.UpdatePayload{ID: id, Password: strPtr("short")}, "password"},
		{"empty roles set", dtoUser.UpdatePayload{ID: id, Roles: &[]string{}}, "roles"},
		{"unknown role", dtoUser.UpdatePayload{ID: id, Roles: &[]string{"Root"}}, "roles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := PatchFromPayload(tt.payload)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}
