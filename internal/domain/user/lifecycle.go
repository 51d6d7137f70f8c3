package user

// Lifecycle of a record is an explicit two-state machine:
//
//	Active  --remove-->  Removed   (admin or owner)
//	Removed --restore--> Active    (admin only)
//
// A set deleted_at timestamp marks the Removed state.

type State string

const (
	StateActive  State = "Active"
	StateRemoved State = "Removed"
)

func (u *User) State() State {
	if u.DeletedAt != nil {
		return StateRemoved
	}
	return StateActive
}

func (u *User) Removed() bool { return u.State() == StateRemoved }

// CanRemove authorizes and validates the Active -> Removed transition.
func (u *User) CanRemove(c Caller) error {
	if !c.IsAdmin() && !c.Owns(u) {
		return ErrForbidden
	}
	if u.Removed() {
		return ErrAlreadyRemoved
	}
	return nil
}

// CanRestore authorizes and validates the Removed -> Active transition.
func (u *User) CanRestore(c Caller) error {
	if !c.IsAdmin() {
		return ErrForbidden
	}
	if !u.Removed() {
		return ErrNotRemoved
	}
	return nil
}

// CanPatch authorizes a field-level update of the record.
func (u *User) CanPatch(c Caller) error {
	if !c.IsAdmin() && !c.Owns(u) {
		return ErrForbidden
	}
	return nil
}
