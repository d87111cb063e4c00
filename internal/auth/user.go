package auth

import "time"

const (
	RoleHost = "HOST"
	RoleUser = "USER"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	UID          string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Nickname     string    `gorm:"not null;default:''"`
	Role         string    `gorm:"not null;default:'USER'"`
	CreatedAt    time.Time `gorm:"not null"`
}

// IsHost reports whether the user holds the global override role.
func (u *User) IsHost() bool { return u.Role == RoleHost }
