package models

import "time"

// Slot is a bookable time for one session type. It is claimed by at most one enquiry.
type Slot struct {
	ID          string      `bson:"id" json:"id"`
	SessionType SessionType `bson:"sessionType" json:"sessionType"`
	Month       string      `bson:"month" json:"month"` // display label, e.g. "April 2026"
	Date        string      `bson:"date" json:"date"`   // YYYY-MM-DD
	Time        string      `bson:"time" json:"time"`   // HH:MM, 24-hour
	IsBooked    bool        `bson:"isBooked" json:"isBooked"`
	EnquiryID   string      `bson:"enquiryId,omitempty" json:"enquiryId,omitempty"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// CreateSlotRequest is the admin payload for a new slot.
type CreateSlotRequest struct {
	SessionType string `json:"sessionType" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

// CreateSlotsRequest creates one slot per listed time on each listed date.
type CreateSlotsRequest struct {
	SessionType string   `json:"sessionType" binding:"required"`
	Dates       []string `json:"dates" binding:"required"`
	Times       []string `json:"times" binding:"required"`
}

// DaySlots are the open times of one date.
type DaySlots struct {
	Date  string `json:"date"`
	Times []Slot `json:"times"`
}
