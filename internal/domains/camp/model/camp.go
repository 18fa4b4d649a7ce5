package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Constants for validation
const (
	MaxMonikerLength = 64
	MaxNameLength    = 100
	MinLength        = 1
	MaxLength        = 365
	DefaultLength    = 1
)

var monikerPattern = regexp.MustCompile(`^[^\s/]+$`)

// Entity is implemented by the persisted aggregates the repository can stage.
type Entity interface {
	entity()
}

// Camp is a conference event. Moniker is its external key: globally unique,
// case-sensitive and immutable once persisted.
type Camp struct {
	CampID    int
	Moniker   string
	Name      string
	EventDate time.Time // zero value = unscheduled
	Length    int       // days
	Location  Location

	// Talks is nil unless the camp was loaded with talks.
	Talks []*Talk
}

// Location is a value type stored inline on the camp row.
type Location struct {
	VenueName     string
	Address1      string
	Address2      string
	Address3      string
	CityTown      string
	StateProvince string
	PostalCode    string
	Country       string
}

func (*Camp) entity() {}

// NewCamp returns a camp with the documented defaults applied.
func NewCamp(moniker string) *Camp {
	return &Camp{
		Moniker: moniker,
		Length:  DefaultLength,
	}
}

// IsScheduled reports whether the camp has an event date.
func (c *Camp) IsScheduled() bool {
	return !c.EventDate.IsZero()
}

// Validate checks field-level rules before staging an insert or update.
func (c *Camp) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Moniker,
			validation.Required.Error("moniker is required"),
			validation.Length(1, MaxMonikerLength),
			validation.Match(monikerPattern).Error("moniker must not contain whitespace or '/'"),
		),
		validation.Field(&c.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&c.Length,
			validation.Min(MinLength).Error("length must be at least 1 day"),
			validation.Max(MaxLength),
		),
	)
}

// DateOnly keeps the calendar date of t as seen in t's own location and
// returns it as midnight UTC. The zero time stays zero.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b carry the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
