package model

import "time"

// UserType is fixed at registration and never changes afterwards.
type UserType string

const (
	UserTypePhotographer UserType = "photographer"
	UserTypeClient       UserType = "client"
)

func (t UserType) Valid() bool {
	return t == UserTypePhotographer || t == UserTypeClient
}

type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
)

type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Type         UserType  `json:"type"`
	About        string    `json:"about"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// AvailableTime is an open slot offered by a photographer. Whether it is
// bookable is derived: a slot referenced by any appointment is taken.
type AvailableTime struct {
	ID                string    `json:"id"`
	PhotographerEmail string    `json:"photographer_email"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	CreatedAt         time.Time `json:"created_at"`
}

type Package struct {
	ID                string    `json:"id"`
	PhotographerEmail string    `json:"photographer_email"`
	PriceCents        int64     `json:"price_cents"`
	Items             []string  `json:"items"`
	CreatedAt         time.Time `json:"created_at"`
}

type Appointment struct {
	ID                string            `json:"id"`
	SlotID            string            `json:"slot_id"`
	PackageID         string            `json:"package_id"`
	PhotographerEmail string            `json:"photographer_email"`
	ClientEmail       string            `json:"client_email"`
	Status            AppointmentStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Invoice totals are frozen when the invoice is first generated; regenerating
// for the same appointment returns the original row.
type Invoice struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	TotalCents    int64     `json:"total_cents"`
	LineItems     []string  `json:"line_items"`
	CreatedAt     time.Time `json:"created_at"`
}

type Album struct {
	PhotographerEmail string    `json:"photographer_email"`
	Name              string    `json:"name"`
	ReleaseType       string    `json:"release_type"`
	CreatedAt         time.Time `json:"created_at"`
	Photos            []Photo   `json:"photos,omitempty"`
}

type Photo struct {
	ID                string `json:"id"`
	PhotographerEmail string `json:"photographer_email"`
	AlbumName         string `json:"album_name"`
	Pathname          string `json:"pathname"`
}

type ContactForm struct {
	ID                string    `json:"id"`
	PhotographerEmail string    `json:"photographer_email"`
	SenderName        string    `json:"sender_name"`
	SenderEmail       string    `json:"sender_email"`
	Message           string    `json:"message"`
	CreatedAt         time.Time `json:"created_at"`
}

// FeedbackForm is tied to an appointment and can exist at most once per
// appointment, only after the appointment completed.
type FeedbackForm struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	ClientEmail   string    `json:"client_email"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}
