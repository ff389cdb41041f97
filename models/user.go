package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSeeker   UserRole = "seeker"
	RoleProvider UserRole = "provider"
)

// UserProfile is the identity row for both care seekers and care providers.
// Provider-only fields stay zero-valued for seekers.
type UserProfile struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email" gorm:"unique"`
	Password     string    `json:"password,omitempty"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone"`
	DOB          string    `json:"dob"` // "YYYY-MM-DD"
	Gender       string    `json:"gender"`
	AvatarURL    string    `json:"avatar_url"`
	IsVerified   bool      `json:"is_verified"`
	OTP          string    `json:"otp,omitempty"`
	OTPExpiresAt time.Time `json:"otp_expires_at,omitempty"`

	// Provider fields
	Specialty           string  `json:"specialty,omitempty"`
	Module              string  `json:"module,omitempty"` // care module tag, e.g. "mental"
	Category            string  `json:"category,omitempty"`
	About               string  `json:"about,omitempty"`
	Location            string  `json:"location,omitempty"`
	Charges             Charges `json:"charges,omitempty" gorm:"type:jsonb"`
	Availability        string  `json:"availability,omitempty"` // e.g. "MON-FRI | 10:00am - 7:00pm"
	ExperienceYears     int     `json:"experience_years,omitempty"`
	Reviews             int     `json:"reviews,omitempty"`
	Patients            int     `json:"patients,omitempty"`
	SetupProgress       string  `json:"setup_progress,omitempty"`
	AutoConfirmBookings bool    `json:"auto_confirm_bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == RoleProvider && u.SetupProgress == "" {
		u.SetupProgress = "basic"
	}
	return nil
}

// FullName joins first and last name, falling back to "Doctor" so the
// auto-reply always has something to introduce itself with.
func (u *UserProfile) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return "Doctor"
	}
	return name
}
