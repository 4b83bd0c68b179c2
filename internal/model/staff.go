package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Staff is a back-office account. Position drives authorization through the
// permission matrix; the account itself carries no individual grants.
type Staff struct {
	BaseModel
	Username         string     `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	PasswordHash     string     `gorm:"type:varchar(255)" json:"-"`
	FullName         string     `gorm:"type:varchar(100)" json:"full_name"`
	Email            string     `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone            string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Position         string     `gorm:"type:varchar(50);not null" json:"position"`
	Status           string     `gorm:"type:varchar(20);default:active" json:"status"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
}

// TableName names the table.
func (Staff) TableName() string {
	return "staff"
}

// SetPassword stores a bcrypt hash of the password.
func (s *Staff) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks a password against the stored hash.
func (s *Staff) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}

// IsActive reports whether the account may log in.
func (s *Staff) IsActive() bool {
	return s.Status == StatusActive
}

// IsLocked reports whether the account is in a lockout window.
func (s *Staff) IsLocked() bool {
	if s.LockedUntil == nil {
		return false
	}
	return time.Now().Before(*s.LockedUntil)
}

// IncrementFailedLogin bumps the failure counter, locking the account for
// 15 minutes after the fifth consecutive failure.
func (s *Staff) IncrementFailedLogin() {
	s.FailedLoginCount++
	if s.FailedLoginCount >= 5 {
		lockTime := time.Now().Add(15 * time.Minute)
		s.LockedUntil = &lockTime
	}
}

// ResetFailedLogin clears the failure counter and any lockout.
func (s *Staff) ResetFailedLogin() {
	s.FailedLoginCount = 0
	s.LockedUntil = nil
}
