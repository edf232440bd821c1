package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SessionType is the kind of sound-bath session a slot or enquiry is for.
type SessionType string

const (
	SessionDiscovery SessionType = "discovery"
	SessionPrivate   SessionType = "private"
	SessionCorporate SessionType = "corporate"
)

// NotSpecified is stored for optional discovery answers the customer skipped.
const NotSpecified = "Not specified"

// AllSessionTypes lists every session type in display order.
func AllSessionTypes() []SessionType {
	return []SessionType{SessionDiscovery, SessionPrivate, SessionCorporate}
}

// Valid reports whether t is one of the known session types.
func (t SessionType) Valid() bool {
	switch t {
	case SessionDiscovery, SessionPrivate, SessionCorporate:
		return true
	}
	return false
}

// ParseSessionType accepts the session type in any letter case.
func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown session type %q", s)
	}
	return t, nil
}

// SessionDetails is the session-type specific part of an enquiry form.
// Implementations are DiscoveryDetails, PrivateDetails and CorporateDetails.
type SessionDetails interface {
	SessionType() SessionType
	Validate() error
	// Comment renders the details into the enquiry comment field.
	Comment() (string, error)
}

// DiscoveryDetails are the optional answers of the discovery session form.
// They are stored as a JSON blob in the enquiry comment.
type DiscoveryDetails struct {
	HasCrystalBowls string `json:"hasCrystalBowls"`
	ExperienceLevel string `json:"experienceLevel"`
	Intentions      string `json:"intentions"`
	AdditionalInfo  string `json:"additionalInfo"`
}

func (DiscoveryDetails) SessionType() SessionType { return SessionDiscovery }

func (DiscoveryDetails) Validate() error { return nil }

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotSpecified
	}
	return strings.TrimSpace(v)
}

func (d DiscoveryDetails) withDefaults() DiscoveryDetails {
	return DiscoveryDetails{
		HasCrystalBowls: orNotSpecified(d.HasCrystalBowls),
		ExperienceLevel: orNotSpecified(d.ExperienceLevel),
		Intentions:      orNotSpecified(d.Intentions),
		AdditionalInfo:  orNotSpecified(d.AdditionalInfo),
	}
}

func (d DiscoveryDetails) Comment() (string, error) {
	b, err := json.Marshal(d.withDefaults())
	if err != nil {
		return "", fmt.Errorf("failed to encode discovery details: %w", err)
	}
	return string(b), nil
}

// PrivateDetails belong to a one-to-one session.
type PrivateDetails struct {
	Focus string `json:"focus,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func (PrivateDetails) SessionType() SessionType { return SessionPrivate }

func (PrivateDetails) Validate() error { return nil }

func (d PrivateDetails) Comment() (string, error) {
	var b strings.Builder
	if f := strings.TrimSpace(d.Focus); f != "" {
		b.WriteString("Focus: " + f)
	}
	if n := strings.TrimSpace(d.Notes); n != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(n)
	}
	return b.String(), nil
}

// CorporateDetails belong to a group session booked by an organisation.
type CorporateDetails struct {
	Organisation string `json:"organisation"`
	GroupSize    int    `json:"groupSize,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (CorporateDetails) SessionType() SessionType { return SessionCorporate }

func (d CorporateDetails) Validate() error {
	if strings.TrimSpace(d.Organisation) == "" {
		return fmt.Errorf("organisation is required for corporate sessions")
	}
	if d.GroupSize < 0 {
		return fmt.Errorf("group size cannot be negative")
	}
	return nil
}

func (d CorporateDetails) Comment() (string, error) {
	lines := []string{"Organisation: " + strings.TrimSpace(d.Organisation)}
	if d.GroupSize > 0 {
		lines = append(lines, fmt.Sprintf("Group size: %d", d.GroupSize))
	}
	if n := strings.TrimSpace(d.Notes); n != "" {
		lines = append(lines, n)
	}
	return strings.Join(lines, "\n"), nil
}

// DecodeSessionDetails builds the typed details for t from the raw form
// payload. freeText is the plain comment typed by the customer; it becomes
// the additional info (discovery) or the notes (private/corporate) unless the
// payload already carries them.
func DecodeSessionDetails(t SessionType, raw json.RawMessage, freeText string) (SessionDetails, error) {
	empty := len(raw) == 0 || string(raw) == "null"
	switch t {
	case SessionDiscovery:
		var d DiscoveryDetails
		if !empty {
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, fmt.Errorf("invalid discovery details: %w", err)
			}
		}
		if d.AdditionalInfo == "" {
			d.AdditionalInfo = freeText
		}
		return d, nil
	case SessionPrivate:
		var d PrivateDetails
		if !empty {
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, fmt.Errorf("invalid private session details: %w", err)
			}
		}
		if d.Notes == "" {
			d.Notes = freeText
		}
		return d, nil
	case SessionCorporate:
		var d CorporateDetails
		if !empty {
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, fmt.Errorf("invalid corporate session details: %w", err)
			}
		}
		if d.Notes == "" {
			d.Notes = freeText
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown session type %q", t)
	}
}
