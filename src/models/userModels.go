package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleYard   Role = "yard"
	RoleLoader Role = "loader"
)

// ParseRole accepts the role names stored in user records; "load" is an older spelling of loader.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleYard, RoleLoader:
		return Role(raw), true
	case "load":
		return RoleLoader, true
	}
	return "", false
}

type UserModel struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name     string `json:"name" gorm:"type:varchar(255)"`
	Email    string `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Role     string `json:"role" gorm:"type:varchar(32);not null"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
}

func (UserModel) TableName() string { return "user_master" }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type CreateUserResponse struct {
	Message           string `json:"message"`
	UID               string `json:"uid"`
	CreatedInAuth     bool   `json:"created_in_auth"`
	CreatedInDatabase bool   `json:"created_in_database"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Identity is the authenticated caller as carried by a verified token.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
