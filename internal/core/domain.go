package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	CategoryRAR       Category = "RAR" // Registrul Auto Roman
	CategoryRER       Category = "RER" // Revizia Extinctorului
	CategoryInsurance Category = "Insurance"
	CategoryTaxes     Category = "Taxes"
	CategoryUtilities Category = "Utilities"
	CategoryOther     Category = "Other"
)

const (
	ProfilePersonal ProfileType = "personal"
	ProfileBusiness ProfileType = "business"
)

type (
	Category string

	ProfileType string

	// Date wraps time.Time so payments carry ISO-8601 strings on the wire
	// and in the persisted JSON files.
	Date struct {
		time.Time
	}

	Profile struct {
		ID        string      `json:"id"`
		Name      string      `json:"name"`
		Type      ProfileType `json:"type"`
		Currency  string      `json:"currency"`
		IsDefault bool        `json:"isDefault"`
	}

	Payment struct {
		ID          string   `json:"id"`
		ProfileID   string   `json:"profileId"`
		Amount      float64  `json:"amount"`
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Date        Date     `json:"date"`
		IsPaid      bool     `json:"isPaid"`
		DueDate     *Date    `json:"dueDate,omitempty"`
		Receipt     string   `json:"receipt,omitempty"`
	}
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidAmount   = errors.New("amount must be non-negative")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("date must be set")
	ErrInvalidProfile  = errors.New("invalid profile type")
	ErrEmptyName       = errors.New("empty profile name")
	ErrEmptyProfileID  = errors.New("empty profile id")
	ErrLastProfile     = errors.New("cannot delete the last profile")
)

const dateOnly = "2006-01-02"

// NewDate creates a Date at midnight UTC for the given calendar day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// UnmarshalJSON accepts RFC 3339 timestamps and bare YYYY-MM-DD dates, the
// two forms clients send.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(dateOnly, s)
		if err != nil {
			return ErrInvalidDate
		}
	}
	d.Time = t
	return nil
}

// SameMonth reports whether both dates fall in the same calendar month of the
// same year.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRAR, CategoryRER, CategoryInsurance, CategoryTaxes, CategoryUtilities, CategoryOther:
		return true
	default:
		return false
	}
}

func (t ProfileType) Valid() bool {
	return t == ProfilePersonal || t == ProfileBusiness
}

func (p Payment) Validate() error {
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(p.ProfileID) == "" {
		return ErrEmptyProfileID
	}
	return nil
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Type.Valid() {
		return ErrInvalidProfile
	}
	return nil
}
