package user

// CallerPayload is the authenticated identity attached to a request,
// either inline or via a signed token the dispatch layer verifies.
type CallerPayload struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// Auth is embedded in every request payload. Exactly one of Caller or
// Token is expected for authenticated operations.
type Auth struct {
	Caller *CallerPayload `json:"caller,omitempty"`
	Token  string         `json:"token,omitempty"`
}

type CreatePayload struct {
	Auth
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

type FindAllPayload struct {
	Auth
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type FindOnePayload struct {
	Auth
	ID string `json:"id"`
}

type FindByUsernamePayload struct {
	Auth
	Username string `json:"username"`
}

type FindByEmailPayload struct {
	Auth
	Email string `json:"email"`
}

type UpdatePayload struct {
	Auth
	ID       string    `json:"id"`
	Username *string   `json:"username,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Password *string   `json:"password,omitempty"`
	Roles    *[]string `json:"roles,omitempty"`
}
