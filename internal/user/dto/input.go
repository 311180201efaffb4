package dto

import "github.com/fekuna/omnipos-admin-console/internal/model"

const DefaultAdminRoleID int64 = 1

type CreateAdminInput struct {
	UserName string           `json:"userName"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	RoleID   int64            `json:"roleId"`
	Status   model.UserStatus `json:"status"`
}

type RemoveUserInput struct {
	ID int64 `json:"id"`
}

// ProfileEdit is a local name/email change applied to a listed user.
type ProfileEdit struct {
	UserName string
	Email    string
}
