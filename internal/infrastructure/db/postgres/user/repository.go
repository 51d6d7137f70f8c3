package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

// storageError keeps the taxonomy surface (StorageUnavailable) while
// retaining the underlying cause in the message.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}

func (r *Repository) CreateUser(ctx context.Context, req domain.User) (*domain.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		uuid.New(), req.Username, req.Email, req.PasswordHash, rolesToDB(req.Roles),
	).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, storageError("insert user", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, userUUID domain.UUID, includeRemoved bool) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUUID, userUUID.String(), includeRemoved).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("fetch user by id", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByKey(ctx context.Context, kind domain.KeyKind, value string) (*domain.User, error) {
	var query string
	switch kind {
	case domain.KeyUsername:
		query = SelectUserByUsername
	case domain.KeyEmail:
		query = SelectUserByEmail
	default:
		return nil, fmt.Errorf("unknown key kind %q", kind)
	}

	u := new(User)
	err := r.db.QueryRow(ctx, query, value).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("fetch user by "+string(kind), err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUsersPage(ctx context.Context, page, pageSize int, filter domain.ListFilter) (domain.Users, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, CountUsers, filter.IncludeRemoved).Scan(&total); err != nil {
		return nil, 0, storageError("count users", err)
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, SelectUsersPage, pageSize, offset, filter.IncludeRemoved)
	if err != nil {
		return nil, 0, storageError("fetch users page", err)
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.UUID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.Roles,

			&u.CreatedAt,
			&u.UpdatedAt,

			&u.DeletedAt,
		); err != nil {
			return nil, 0, storageError("scan users page", err)
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, storageError("fetch users page", err)
	}

	return fromDBModels(&us), total, nil
}

func (r *Repository) UpdateUser(ctx context.Context, userUUID domain.UUID, change domain.Change) (*domain.User, error) {
	u := new(User)

	var roles *[]string
	if change.Roles != nil {
		rs := rolesToDB(*change.Roles)
		roles = &rs
	}

	err := r.db.QueryRow(ctx, UpdateUserByUUID,
		change.Username, change.Email, change.PasswordHash, roles, userUUID.String(),
	).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrDuplicateKey
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("update user", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) SoftDeleteUser(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SoftDeleteUserByUUID, userUUID.String()).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// transition lost: the row is gone or another remove already won
			removed, perr := r.fetchRemovedFlag(ctx, userUUID)
			if perr != nil {
				return nil, perr
			}
			if removed {
				return nil, domain.ErrAlreadyRemoved
			}
			return nil, domain.ErrNotFound
		}
		return nil, storageError("soft delete user", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) RestoreUser(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, RestoreUserByUUID, userUUID.String()).Scan(
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			removed, perr := r.fetchRemovedFlag(ctx, userUUID)
			if perr != nil {
				return nil, perr
			}
			if !removed {
				return nil, domain.ErrNotRemoved
			}
			return nil, domain.ErrNotFound
		}
		return nil, storageError("restore user", err)
	}

	return fromDBModel(u), nil
}

// fetchRemovedFlag disambiguates a no-op conditional update.
// ErrNotFound if the row does not exist at all.
func (r *Repository) fetchRemovedFlag(ctx context.Context, userUUID domain.UUID) (bool, error) {
	var removed bool
	if err := r.db.QueryRow(ctx, SelectRemovedFlagByUUID, userUUID.String()).Scan(&removed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, storageError("probe user state", err)
	}
	return removed, nil
}
