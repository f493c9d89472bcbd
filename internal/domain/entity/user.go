package entity

import (
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a dashboard account.
type User struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Email         string        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone         *string       `gorm:"size:50;uniqueIndex" json:"phone,omitempty"`
	Role          enum.UserRole `gorm:"size:20;not null" json:"role"`
	Password      string        `gorm:"size:255;not null" json:"-"`
	GoogleSubject *string       `gorm:"size:255;uniqueIndex" json:"-"`
	IsActive      bool          `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt   *time.Time    `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	RecoveryTokens []RecoveryToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds one of roles. Admins hold every role.
func (u *User) HasRole(roles ...enum.UserRole) bool {
	if u.Role == enum.UserRoleAdmin {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// RecoveryToken is a single-use password recovery token. Only its hash is stored.
type RecoveryToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	TokenHash string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (t *RecoveryToken) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

func (RecoveryToken) TableName() string {
	return "user_recovery_tokens"
}

// Usable reports whether the token is unused and unexpired at now.
func (t *RecoveryToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
