package model

type UserStatus int

const (
	UserInactive UserStatus = 0
	UserActive   UserStatus = 1
)

func (s UserStatus) Toggle() UserStatus {
	if s == UserActive {
		return UserInactive
	}
	return UserActive
}

func (s UserStatus) String() string {
	if s == UserActive {
		return "active"
	}
	return "inactive"
}

type AdminUser struct {
	ID       int64      `json:"id"`
	UserName string     `json:"userName"`
	Email    string     `json:"email"`
	Status   UserStatus `json:"status"`
	RoleID   int64      `json:"roleId"`
}

func (u AdminUser) EntityID() int64 { return u.ID }

func (u AdminUser) WithToggledStatus() AdminUser {
	u.Status = u.Status.Toggle()
	return u
}

type ConsumerUser struct {
	ID       int64      `json:"id"`
	UserName string     `json:"userName"`
	Email    string     `json:"email"`
	Status   UserStatus `json:"status"`
}

func (u ConsumerUser) EntityID() int64 { return u.ID }

func (u ConsumerUser) WithToggledStatus() ConsumerUser {
	u.Status = u.Status.Toggle()
	return u
}
