package user

// The username/email unique indexes span active and removed rows, so a
// restore can never surface a duplicate key. Remove/restore are single
// conditional UPDATEs: under concurrency exactly one transition wins.
const (
	InsertUser = `
		INSERT INTO users (uuid, username, email, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
	`
	SelectUserByUUID = `
		SELECT uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
		FROM users
		WHERE uuid = $1 AND ($2 OR deleted_at IS NULL)
	`
	SelectUserByUsername = `
		SELECT uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
		FROM users
		WHERE username = $1 AND deleted_at IS NULL
	`
	SelectUserByEmail = `
		SELECT uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	SelectUsersPage = `
		SELECT uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
		FROM users
		WHERE ($3 OR deleted_at IS NULL)
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	CountUsers = `
		SELECT count(*) FROM users WHERE ($1 OR deleted_at IS NULL)
	`
	UpdateUserByUUID = `
		UPDATE users
		SET username = COALESCE($1, username),
		    email = COALESCE($2, email),
		    password_hash = COALESCE($3, password_hash),
		    roles = COALESCE($4, roles),
		    updated_at = now()
		WHERE uuid = $5 AND deleted_at IS NULL
		RETURNING uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
	`
	SoftDeleteUserByUUID = `
		UPDATE users
		SET deleted_at = now(),
		    updated_at = now()
		WHERE uuid = $1 AND deleted_at IS NULL
		RETURNING uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
	`
	RestoreUserByUUID = `
		UPDATE users
		SET deleted_at = NULL,
		    updated_at = now()
		WHERE uuid = $1 AND deleted_at IS NOT NULL
		RETURNING uuid, username, email, password_hash, roles, created_at, updated_at, deleted_at
	`
	SelectRemovedFlagByUUID = `SELECT deleted_at IS NOT NULL FROM users WHERE uuid = $1`
)
