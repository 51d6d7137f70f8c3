package user

// Reply is the envelope every message-pattern call answers with.
// Status values follow HTTP semantics so callers can branch on
// client-caused vs server-caused failures.
type Reply struct {
	Status int         `json:"status"`
	Data   any         `json:"data,omitempty"`
	Error  *ReplyError `json:"error,omitempty"`
}

type ReplyError struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
