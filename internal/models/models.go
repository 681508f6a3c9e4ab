package models

import (
	"encoding/xml"
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusPlanned   TripStatus = "PLANNED"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// ValidTripStatus проверяет, что статус поездки входит в допустимый набор.
func ValidTripStatus(status TripStatus) bool {
	switch status {
	case TripStatusPlanned, TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Trip struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	City        string     `json:"city"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Budget      float64    `json:"budget"`
	ActivityIDs []int64    `json:"activity_ids"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Activity хранится в XML-каталоге, поэтому несет и xml-, и json-теги.
// Схема XML повторяет исходные файлы каталога (id как атрибут).
type Activity struct {
	XMLName     xml.Name `xml:"activity" json:"-"`
	ID          int64    `xml:"id,attr" json:"id"`
	Name        string   `xml:"name" json:"name"`
	City        string   `xml:"city" json:"city"`
	Type        string   `xml:"type" json:"type"`
	Duration    int      `xml:"duration" json:"duration"`
	Cost        float64  `xml:"cost" json:"cost"`
	Rating      float64  `xml:"rating" json:"rating"`
	Description string   `xml:"description" json:"description"`
	TimeSlot    string   `xml:"timeSlot" json:"timeSlot"`
	Image       string   `xml:"image,omitempty" json:"image,omitempty"`
}

type City struct {
	XMLName     xml.Name `xml:"city" json:"-"`
	ID          int64    `xml:"id,attr" json:"id"`
	Name        string   `xml:"name" json:"name"`
	Country     string   `xml:"country" json:"country"`
	Description string   `xml:"description" json:"description"`
	Image       string   `xml:"image,omitempty" json:"image,omitempty"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
