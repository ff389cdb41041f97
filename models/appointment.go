package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
)

// Appointment is a booking between exactly one seeker and one provider.
// Rows are never deleted; terminal statuses stay on record.
type Appointment struct {
	ID           string            `json:"id" gorm:"primaryKey"`
	SeekerID     string            `json:"seeker_id"`
	Seeker       UserProfile       `json:"seeker,omitempty" gorm:"foreignKey:SeekerID"`
	ProviderID   string            `json:"provider_id"`
	Provider     UserProfile       `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	DoctorName   string            `json:"doctor_name"` // denormalized for list rendering
	Specialty    string            `json:"specialty"`
	Module       string            `json:"module"`
	Date         string            `json:"date"` // ISO date, e.g. "2025-03-25"
	Time         string            `json:"time"` // display time, e.g. "4:00pm"
	StartsAt     time.Time         `json:"starts_at"`
	LocationType string            `json:"location_type"` // "home" | "clinic"
	Location     string            `json:"location"`
	Status       AppointmentStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving to newStatus is allowed. Transitions
// are monotonic: pending -> {upcoming, rejected}, upcoming -> {completed,
// cancelled}, nothing out of a terminal state.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusUpcoming && newStatus != StatusRejected {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusUpcoming:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from upcoming to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled, StatusRejected:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// UpdateStatus validates and persists a status transition.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.CanTransition(newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}

// AppointmentGroups partitions a user's appointments into the view groups
// the home and appointments screens render.
type AppointmentGroups struct {
	Requests  []Appointment `json:"requests"` // pending
	Upcoming  []Appointment `json:"upcoming"`
	Completed []Appointment `json:"completed"`
	Cancelled []Appointment `json:"cancelled"`
	Rejected  []Appointment `json:"rejected"`
}

// GroupAppointments splits rows by status. Input order is preserved within
// each group.
func GroupAppointments(appointments []Appointment) AppointmentGroups {
	groups := AppointmentGroups{
		Requests:  []Appointment{},
		Upcoming:  []Appointment{},
		Completed: []Appointment{},
		Cancelled: []Appointment{},
		Rejected:  []Appointment{},
	}
	for _, a := range appointments {
		switch a.Status {
		case StatusPending:
			groups.Requests = append(groups.Requests, a)
		case StatusUpcoming:
			groups.Upcoming = append(groups.Upcoming, a)
		case StatusCompleted:
			groups.Completed = append(groups.Completed, a)
		case StatusCancelled:
			groups.Cancelled = append(groups.Cancelled, a)
		case StatusRejected:
			groups.Rejected = append(groups.Rejected, a)
		}
	}
	return groups
}
