package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/secure/precis"

	domain "user-directory-service/internal/domain/user"
	dtoUser "user-directory-service/internal/interface/msg/dto/user"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ValidatePagination applies defaults for omitted values and bounds-checks
// the rest. Zero means "not supplied" on the wire.
func ValidatePagination(page, pageSize int) (int, int, map[string]string) {
	errs := make(map[string]string)

	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	if page < 1 {
		errs["page"] = "page must be >= 1"
	}
	if pageSize < 1 {
		errs["pageSize"] = "pageSize must be >= 1"
	} else if pageSize > MaxPageSize {
		errs["pageSize"] = "pageSize must be <= 100"
	}

	if len(errs) == 0 {
		return page, pageSize, nil
	}
	return page, pageSize, errs
}

// DraftFromPayload normalizes and validates a create payload. The username
// goes through the PRECIS UsernameCaseMapped profile, so visually
// confusable or mixed-case variants collapse to one canonical key.
func DraftFromPayload(p dtoUser.CreatePayload) (domain.Draft, map[string]string) {
	errs := make(map[string]string)

	username, uerr := normalizeUsername(p.Username)
	email := strings.ToLower(strings.TrimSpace(p.Email))

	if strings.TrimSpace(p.Username) == "" {
		errs["username"] = "username is required"
	} else if uerr != nil {
		errs["username"] = "username contains disallowed characters"
	} else if l := utf8.RuneCountInString(username); l < minUsernameLen || l > maxUsernameLen {
		errs["username"] = "username length must be 3 to 32 characters"
	}

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(p.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(p.Password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8 to 72 characters"
	}

	roles := toRoles(p.Roles)
	if !roles.Known() {
		errs["roles"] = "roles must be drawn from User, Admin, Moderator"
	}

	if len(errs) != 0 {
		return domain.Draft{}, errs
	}

	return domain.Draft{
		Username: username,
		Email:    email,
		Password: p.Password,
		Roles:    roles,
	}, nil
}

// PatchFromPayload normalizes and validates an update payload. Nil fields
// stay nil; an all-nil patch is rejected.
func PatchFromPayload(p dtoUser.UpdatePayload) (domain.Patch, map[string]string) {
	errs := make(map[string]string)
	patch := domain.Patch{}

	if p.Username != nil {
		username, err := normalizeUsername(*p.Username)
		if err != nil {
			errs["username"] = "username contains disallowed characters"
		} else if l := utf8.RuneCountInString(username); l < minUsernameLen || l > maxUsernameLen {
			errs["username"] = "username length must be 3 to 32 characters"
		} else {
			patch.Username = &username
		}
	}

	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "invalid email format"
		} else {
			patch.Email = &email
		}
	}

	if p.Password != nil {
		if l := utf8.RuneCountInString(*p.Password); l < minPasswordLen || l > maxPasswordLen {
			errs["password"] = "password length must be 8 to 72 characters"
		} else {
			patch.Password = p.Password
		}
	}

	if p.Roles != nil {
		roles := toRoles(*p.Roles)
		if len(roles) == 0 || !roles.Known() {
			errs["roles"] = "roles must be a non-empty set drawn from User, Admin, Moderator"
		} else {
			patch.Roles = &roles
		}
	}

	if len(errs) != 0 {
		return domain.Patch{}, errs
	}
	if patch.Empty() {
		return domain.Patch{}, map[string]string{"patch": "at least one field must be supplied"}
	}

	return patch, nil
}

func normalizeUsername(s string) (string, error) {
	return precis.UsernameCaseMapped.String(strings.TrimSpace(s))
}

func toRoles(rs []string) domain.Roles {
	roles := make(domain.Roles, len(rs))
	for idx, r := range rs {
		roles[idx] = domain.Role(r)
	}
	return roles
}
