package msg

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-directory-service/internal/application/ports"
	domain "user-directory-service/internal/domain/user"
	jwtSvc "user-directory-service/internal/infrastructure/jwt"
	dtoUser "user-directory-service/internal/interface/msg/dto/user"
	"user-directory-service/internal/interface/msg/validator"
)

// Handler routes message patterns to the directory service. It is the thin
// dispatch layer: decode payload, resolve the caller, delegate, map the
// outcome onto the reply envelope.
type Handler struct {
	directory ports.Directory
	jwt       *jwtSvc.Service
	logger    *zap.Logger
}

func NewHandler(directory ports.Directory, jwt *jwtSvc.Service, logger *zap.Logger) *Handler {
	return &Handler{
		directory: directory,
		jwt:       jwt,
		logger:    logger,
	}
}

// Handle implements rmqrpc.Handler.
func (h *Handler) Handle(ctx context.Context, pattern string, body []byte) ([]byte, error) {
	var reply dtoUser.Reply

	switch pattern {
	case PatternHealth:
		reply = dtoUser.Reply{Status: http.StatusOK, Data: h.directory.Health()}
	case PatternCreate:
		reply = h.create(ctx, body)
	case PatternFindAll:
		reply = h.findAll(ctx, body)
	case PatternFindByID:
		reply = h.findOne(ctx, body)
	case PatternFindByUsername:
		reply = h.findByUsername(ctx, body)
	case PatternFindByEmail:
		reply = h.findByEmail(ctx, body)
	case PatternFindMeta:
		reply = h.findMeta(ctx, body)
	case PatternFindSummary:
		reply = h.findSummary(ctx, body)
	case PatternUpdate:
		reply = h.update(ctx, body)
	case PatternRemove:
		reply = h.remove(ctx, body)
	case PatternRestore:
		reply = h.restore(ctx, body)
	default:
		reply = dtoUser.Reply{
			Status: http.StatusNotFound,
			Error:  &dtoUser.ReplyError{Kind: "unknown_pattern", Message: "unknown message pattern: " + pattern},
		}
	}

	return json.Marshal(reply)
}

func (h *Handler) create(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.CreatePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	// registration may be anonymous; a bad token is still rejected
	caller, authReply := h.resolveCaller(p.Auth, false)
	if authReply != nil {
		return *authReply
	}

	draft, errs := validator.DraftFromPayload(p)
	if errs != nil {
		return invalidPayload(errs)
	}

	v, err := h.directory.Create(ctx, draft, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusCreated, Data: v}
}

func (h *Handler) findAll(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindAllPayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	page, pageSize, errs := validator.ValidatePagination(p.Page, p.PageSize)
	if errs != nil {
		return invalidPayload(errs)
	}

	list, err := h.directory.FindAll(ctx, page, pageSize, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: list}
}

func (h *Handler) findOne(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindOnePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.FindByID(ctx, p.ID, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) findByUsername(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindByUsernamePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.FindByKey(ctx, domain.KeyUsername, p.Username, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) findByEmail(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindByEmailPayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.FindByKey(ctx, domain.KeyEmail, p.Email, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) findMeta(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindOnePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.FindMeta(ctx, p.ID, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) findSummary(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindOnePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.FindSummary(ctx, p.ID, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) update(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.UpdatePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	patch, errs := validator.PatchFromPayload(p)
	if errs != nil {
		return invalidPayload(errs)
	}

	v, err := h.directory.Update(ctx, p.ID, patch, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) remove(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindOnePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.Remove(ctx, p.ID, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) restore(ctx context.Context, body []byte) dtoUser.Reply {
	var p dtoUser.FindOnePayload
	if reply, ok := h.decode(body, &p); !ok {
		return reply
	}

	caller, authReply := h.resolveCaller(p.Auth, true)
	if authReply != nil {
		return *authReply
	}

	v, err := h.directory.Restore(ctx, p.ID, caller)
	if err != nil {
		return h.replyError(err)
	}

	return dtoUser.Reply{Status: http.StatusOK, Data: v}
}

func (h *Handler) decode(body []byte, dst any) (dtoUser.Reply, bool) {
	if err := json.Unmarshal(body, dst); err != nil {
		return dtoUser.Reply{
			Status: http.StatusBadRequest,
			Error:  &dtoUser.ReplyError{Kind: "invalid_payload", Message: "invalid request payload"},
		}, false
	}
	return dtoUser.Reply{}, true
}

// resolveCaller builds the caller identity from an inline caller object or
// a signed caller token. When required is false a missing identity yields
// the anonymous caller, but a present-and-broken one is still rejected.
func (h *Handler) resolveCaller(a dtoUser.Auth, required bool) (domain.Caller, *dtoUser.Reply) {
	switch {
	case a.Token != "":
		claims, err := h.jwt.ValidateToken(a.Token)
		if err != nil {
			return domain.Caller{}, unauthenticated("invalid caller token")
		}
		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			return domain.Caller{}, unauthenticated("invalid caller identity")
		}
		return domain.Caller{ID: id, Roles: toDomainRoles(claims.Roles)}, nil
	case a.Caller != nil:
		id, err := uuid.Parse(a.Caller.ID)
		if err != nil {
			return domain.Caller{}, unauthenticated("invalid caller identity")
		}
		return domain.Caller{ID: id, Roles: toDomainRoles(a.Caller.Roles)}, nil
	default:
		if required {
			return domain.Caller{}, unauthenticated("caller identity is required")
		}
		return domain.Caller{}, nil
	}
}

func toDomainRoles(rs []string) domain.Roles {
	roles := make(domain.Roles, len(rs))
	for idx, r := range rs {
		roles[idx] = domain.Role(r)
	}
	return roles
}

func unauthenticated(message string) *dtoUser.Reply {
	return &dtoUser.Reply{
		Status: http.StatusUnauthorized,
		Error:  &dtoUser.ReplyError{Kind: "unauthenticated", Message: message},
	}
}

func invalidPayload(details map[string]string) dtoUser.Reply {
	return dtoUser.Reply{
		Status: http.StatusBadRequest,
		Error: &dtoUser.ReplyError{
			Kind:    "invalid_payload",
			Message: "invalid request payload",
			Details: details,
		},
	}
}

func (h *Handler) replyError(err error) dtoUser.Reply {
	kind := domain.KindOf(err)
	status := statusFor(kind)

	name := string(kind)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error("directory operation failed", zap.Error(err))
		if name == "" {
			name = "internal"
		}
		// server-side details stay in the log, not on the wire
		message = "internal error"
		if kind == domain.KindStorageUnavailable {
			message = domain.ErrStorageUnavailable.Message
		}
	}

	return dtoUser.Reply{
		Status: status,
		Error:  &dtoUser.ReplyError{Kind: name, Message: message},
	}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidIdentifier:
		return http.StatusBadRequest
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicateKey, domain.KindAlreadyRemoved, domain.KindNotRemoved:
		return http.StatusConflict
	case domain.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
