package views

import (
	"time"

	"user-directory-service/internal/domain/user"
)

const hoursPerDay = 24

// Project maps a record to the requested view class, filtered by the
// caller's privilege for that record.
//
// FullView is visible to the record's owner and to staff (Admin/Moderator);
// an unentitled request degrades to SummaryView instead of failing.
// MetaView is privileged operational data: it fails closed with Forbidden
// for non-Admin callers, never degrades.
func Project(u *user.User, caller user.Caller, requested Class) (View, error) {
	switch requested {
	case ClassMeta:
		if !caller.IsAdmin() {
			return nil, user.ErrForbidden
		}
		return toMeta(u), nil
	case ClassFull:
		if caller.IsStaff() || caller.Owns(u) {
			return toFull(u), nil
		}
		return toSummary(u), nil
	default:
		return toSummary(u), nil
	}
}

// ProjectList shapes listing items: FullView for staff callers,
// SummaryView for everyone else.
func ProjectList(us user.Users, caller user.Caller) []View {
	items := make([]View, len(us))
	for idx, u := range us {
		if caller.IsStaff() {
			items[idx] = toFull(u)
		} else {
			items[idx] = toSummary(u)
		}
	}
	return items
}

// Full projects without a privilege check. For internal consumers
// (event payloads) only; caller-facing paths go through Project.
func Full(u *user.User) FullView { return toFull(u) }

// Summary projects the minimal identity shape without a privilege check.
func Summary(u *user.User) SummaryView { return toSummary(u) }

func toSummary(u *user.User) SummaryView {
	return SummaryView{
		ID:       u.UUID,
		Username: u.Username,
		Roles:    u.Roles,
	}
}

func toFull(u *user.User) FullView {
	return FullView{
		ID:        u.UUID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func toMeta(u *user.User) MetaView {
	age := int(time.Since(u.CreatedAt).Hours() / hoursPerDay)
	if age < 0 {
		age = 0
	}
	return MetaView{
		FullView:       toFull(u),
		AccountAgeDays: age,
		Removed:        u.Removed(),
		RemovedAt:      u.DeletedAt,
	}
}
