package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`               // Primary key
	Username string `gorm:"size:191;unique;not null"` // Unique username, compared exactly
	Password string `gorm:"not null"`                 // bcrypt hash, never the plaintext
}
