package models

// RoleUser is the role assigned at registration.
const RoleUser = "user"

// User is a registered account. The password column holds a bcrypt hash.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	Role         string `gorm:"not null;default:'user'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
