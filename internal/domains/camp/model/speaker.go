package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Speaker is referenced (not owned) by talks.
type Speaker struct {
	SpeakerID  int
	FirstName  string
	LastName   string
	MiddleName string
	Bio        string
	Company    string
	CompanyURL string
	BlogURL    string
	Twitter    string
	GitHub     string
}

func (*Speaker) entity() {}

func (s *Speaker) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&s.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&s.MiddleName, validation.Length(0, 50)),
		validation.Field(&s.Bio, validation.Length(0, 4000)),
		validation.Field(&s.CompanyURL, is.URL),
		validation.Field(&s.BlogURL, is.URL),
	)
}
