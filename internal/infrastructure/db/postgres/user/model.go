package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID         uuid.UUID
		Username     string
		Email        string
		PasswordHash string
		Roles        []string

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User
)
