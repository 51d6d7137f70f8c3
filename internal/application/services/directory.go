package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"user-directory-service/internal/application/ports"
	"user-directory-service/internal/application/views"
	"user-directory-service/internal/domain/identity"
	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/infrastructure/mq"
)

// DirectoryService composes, per operation: identifier validation ->
// authorization -> repository call -> projection, short-circuiting at the
// first failure. It holds no state between calls; everything authoritative
// lives in the repository.
type DirectoryService struct {
	users            domain.Repository
	cache            ports.SummaryCache
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
	openRegistration bool
}

func NewDirectoryService(
	users domain.Repository,
	cache ports.SummaryCache,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	openRegistration bool,
) ports.Directory {
	return &DirectoryService{
		users:            users,
		cache:            cache,
		mq:               mq,
		mCounter:         mCounter,
		openRegistration: openRegistration,
	}
}

func (ds *DirectoryService) Health() string {
	return "users service is up and running!"
}

// Create registers a new record in the Active state. Registration is open
// unless the deployment closed it, in which case only Admin may create.
// Non-Admin callers always get the plain User role regardless of what the
// draft asked for.
func (ds *DirectoryService) Create(ctx context.Context, draft domain.Draft, caller domain.Caller) (views.View, error) {
	if !ds.openRegistration && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	roles := draft.Roles
	if len(roles) == 0 || !caller.IsAdmin() {
		roles = domain.Roles{domain.RoleUser}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := ds.users.CreateUser(ctx, domain.User{
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: string(hash),
		Roles:        roles,
	})
	if err != nil {
		return nil, err
	}

	ds.emit(mq.ActionCreated, u)
	ds.mCounter.WithLabelValues("user_created_total").Inc()

	return views.Full(u), nil
}

func (ds *DirectoryService) FindAll(ctx context.Context, page, pageSize int, caller domain.Caller) (*views.ListResponse, error) {
	us, total, err := ds.users.FetchUsersPage(ctx, page, pageSize, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	pageCount := 0
	if total > 0 {
		pageCount = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return &views.ListResponse{
		Items: views.ProjectList(us, caller),
		Meta: views.ListMeta{
			Total:     total,
			Page:      page,
			PageSize:  pageSize,
			PageCount: pageCount,
		},
	}, nil
}

func (ds *DirectoryService) FindByID(ctx context.Context, id string, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}

	u, err := ds.users.FetchUserByID(ctx, userUUID, false)
	if err != nil {
		return nil, err
	}

	return views.Project(u, caller, views.ClassFull)
}

func (ds *DirectoryService) FindByKey(ctx context.Context, kind domain.KeyKind, value string, caller domain.Caller) (views.View, error) {
	u, err := ds.users.FetchUserByKey(ctx, kind, value)
	if err != nil {
		return nil, err
	}

	return views.Project(u, caller, views.ClassFull)
}

// FindMeta fails closed: the Admin gate comes before the repository is
// consulted, so nothing about the target leaks to unentitled callers.
func (ds *DirectoryService) FindMeta(ctx context.Context, id string, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	u, err := ds.users.FetchUserByID(ctx, userUUID, true)
	if err != nil {
		return nil, err
	}

	return views.Project(u, caller, views.ClassMeta)
}

func (ds *DirectoryService) FindSummary(ctx context.Context, id string, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}

	if ds.cache != nil {
		if v, ok := ds.cache.GetSummary(ctx, userUUID); ok {
			return *v, nil
		}
	}

	u, err := ds.users.FetchUserByID(ctx, userUUID, false)
	if err != nil {
		return nil, err
	}

	v := views.Summary(u)
	if ds.cache != nil {
		ds.cache.SetSummary(ctx, userUUID, v)
	}

	return v, nil
}

func (ds *DirectoryService) Update(ctx context.Context, id string, patch domain.Patch, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}

	target, err := ds.users.FetchUserByID(ctx, userUUID, false)
	if err != nil {
		return nil, err
	}
	if err = target.CanPatch(caller); err != nil {
		return nil, err
	}
	// role assignment stays an Admin capability even for the owner
	if patch.Roles != nil && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	change := domain.Change{
		Username: patch.Username,
		Email:    patch.Email,
		Roles:    patch.Roles,
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		change.PasswordHash = &hashed
	}

	u, err := ds.users.UpdateUser(ctx, userUUID, change)
	if err != nil {
		return nil, err
	}

	ds.emit(mq.ActionUpdated, u)
	ds.mCounter.WithLabelValues("user_updated_total").Inc()
	ds.invalidate(ctx, userUUID)

	return views.Project(u, caller, views.ClassFull)
}

func (ds *DirectoryService) Remove(ctx context.Context, id string, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}

	target, err := ds.users.FetchUserByID(ctx, userUUID, true)
	if err != nil {
		return nil, err
	}
	if err = target.CanRemove(caller); err != nil {
		return nil, err
	}

	// the conditional update inside the repository settles concurrent
	// removes: exactly one wins, the loser gets AlreadyRemoved
	u, err := ds.users.SoftDeleteUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	ds.emit(mq.ActionRemoved, u)
	ds.mCounter.WithLabelValues("user_removed_total").Inc()
	ds.invalidate(ctx, userUUID)

	return views.Project(u, caller, views.ClassFull)
}

func (ds *DirectoryService) Restore(ctx context.Context, id string, caller domain.Caller) (views.View, error) {
	userUUID, err := identity.Validate(id)
	if err != nil {
		return nil, err
	}

	target, err := ds.users.FetchUserByID(ctx, userUUID, true)
	if err != nil {
		return nil, err
	}
	if err = target.CanRestore(caller); err != nil {
		return nil, err
	}

	u, err := ds.users.RestoreUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	ds.emit(mq.ActionRestored, u)
	ds.mCounter.WithLabelValues("user_restored_total").Inc()
	ds.invalidate(ctx, userUUID)

	return views.Project(u, caller, views.ClassFull)
}

func (ds *DirectoryService) emit(action string, u *domain.User) {
	if ds.mq == nil || u == nil {
		return
	}
	ds.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		UserID:  u.UUID.String(),
		Payload: views.Full(u),
	}
}

func (ds *DirectoryService) invalidate(ctx context.Context, id uuid.UUID) {
	if ds.cache != nil {
		ds.cache.Invalidate(ctx, id)
	}
}
