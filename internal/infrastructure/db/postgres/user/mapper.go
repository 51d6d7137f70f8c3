package user

import (
	domain "user-directory-service/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	roles := make(domain.Roles, len(model.Roles))
	for idx, r := range model.Roles {
		roles[idx] = domain.Role(r)
	}

	var u = &domain.User{
		UUID:         model.UUID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Roles:        roles,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,

		DeletedAt: model.DeletedAt,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func rolesToDB(roles domain.Roles) []string {
	rs := make([]string, len(roles))
	for idx, r := range roles {
		rs[idx] = string(r)
	}

	return rs
}
