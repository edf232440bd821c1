package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EnquiryStatus is set by administrators only.
type EnquiryStatus string

const (
	EnquiryPending   EnquiryStatus = "pending"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryCompleted EnquiryStatus = "completed"
)

func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryPending, EnquiryContacted, EnquiryCompleted:
		return true
	}
	return false
}

// ParseEnquiryStatus accepts the status in any letter case.
func ParseEnquiryStatus(s string) (EnquiryStatus, error) {
	st := EnquiryStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown enquiry status %q", s)
	}
	return st, nil
}

// Enquiry is a customer's booking request for a session.
type Enquiry struct {
	ID          string        `bson:"id" json:"id"`
	FullName    string        `bson:"fullName" json:"fullName"`
	Address     string        `bson:"address" json:"address"`
	DateOfBirth string        `bson:"dateOfBirth" json:"dateOfBirth"`
	Services    string        `bson:"services" json:"services"`
	Phone       string        `bson:"phone" json:"phone"`
	Email       string        `bson:"email" json:"email"`
	Comment     string        `bson:"comment" json:"comment"`
	Status      EnquiryStatus `bson:"status" json:"status"`
	SessionType SessionType   `bson:"sessionType" json:"sessionType"`
	SlotID      string        `bson:"slotId,omitempty" json:"slotId,omitempty"`
	Date        string        `bson:"date,omitempty" json:"date,omitempty"`
	Time        string        `bson:"time,omitempty" json:"time,omitempty"`
	UserID      string        `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// DiscoveryAnswers decodes the JSON comment of a discovery enquiry. It
// returns false for other session types or free-text comments.
func (e Enquiry) DiscoveryAnswers() (DiscoveryDetails, bool) {
	if e.SessionType != SessionDiscovery {
		return DiscoveryDetails{}, false
	}
	var d DiscoveryDetails
	if err := json.Unmarshal([]byte(e.Comment), &d); err != nil {
		return DiscoveryDetails{}, false
	}
	return d, true
}

// EnquiryRequest is the customer-facing booking form.
type EnquiryRequest struct {
	SessionType string          `json:"sessionType" binding:"required"`
	FullName    string          `json:"fullName" binding:"required"`
	Email       string          `json:"email" binding:"required"`
	Phone       string          `json:"phone" binding:"required"`
	Address     string          `json:"address"`
	DateOfBirth string          `json:"dateOfBirth"`
	Services    string          `json:"services"`
	Comment     string          `json:"comment"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Details     json.RawMessage `json:"details,omitempty"`
}

// EnquiryFilter narrows an admin listing. Zero values match everything.
type EnquiryFilter struct {
	Status      EnquiryStatus
	SessionType SessionType
}

// UpdateEnquiryStatusRequest is the admin payload for a status change.
type UpdateEnquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
