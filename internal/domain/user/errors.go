package user

type ErrorKind string

const (
	KindInvalidIdentifier  ErrorKind = "invalid_identifier"
	KindNotFound           ErrorKind = "not_found"
	KindDuplicateKey       ErrorKind = "duplicate_key"
	KindForbidden          ErrorKind = "forbidden"
	KindAlreadyRemoved     ErrorKind = "already_removed"
	KindNotRemoved         ErrorKind = "not_removed"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

// Error carries an error kind plus a human-readable message so the
// dispatch layer can tell client-caused failures from server-caused ones.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches by kind, so a wrapped E(KindNotFound, ...) satisfies
// errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func E(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidIdentifier  = E(KindInvalidIdentifier, "identifier must be a valid UUID")
	ErrNotFound           = E(KindNotFound, "user not found")
	ErrDuplicateKey       = E(KindDuplicateKey, "username or email already in use")
	ErrForbidden          = E(KindForbidden, "operation not permitted")
	ErrAlreadyRemoved     = E(KindAlreadyRemoved, "user is already removed")
	ErrNotRemoved         = E(KindNotRemoved, "user is not removed")
	ErrStorageUnavailable = E(KindStorageUnavailable, "storage unavailable")
)

// KindOf extracts the error kind from err or any error it wraps.
// It returns "" for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// ClientCaused reports whether the failure was caused by the caller
// rather than by this service or its storage.
func (k ErrorKind) ClientCaused() bool {
	switch k {
	case KindInvalidIdentifier, KindNotFound, KindDuplicateKey,
		KindForbidden, KindAlreadyRemoved, KindNotRemoved:
		return true
	}
	return false
}
