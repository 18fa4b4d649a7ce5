package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CampModel - wire shape of a camp. Location is flattened into location_* fields.
type CampModel struct {
	Name      string `json:"name"`
	Moniker   string `json:"moniker"`
	EventDate Date   `json:"event_date"`
	Length    int    `json:"length"`

	LocationVenueName     string `json:"location_venue_name"`
	LocationAddress1      string `json:"location_address1"`
	LocationAddress2      string `json:"location_address2"`
	LocationAddress3      string `json:"location_address3"`
	LocationCityTown      string `json:"location_city_town"`
	LocationStateProvince string `json:"location_state_province"`
	LocationPostalCode    string `json:"location_postal_code"`
	LocationCountry       string `json:"location_country"`

	Talks []TalkModel `json:"talks"`
}

// NewCampModel returns a model with defaults, for decoding request bodies:
// fields absent from the payload keep these values.
func NewCampModel() *CampModel {
	return &CampModel{
		Length: DefaultLength,
	}
}

// Validate - kiểm tra payload trước khi map sang entity
func (m CampModel) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Moniker, validation.Required, validation.Length(1, MaxMonikerLength)),
		validation.Field(&m.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&m.Length, validation.Min(MinLength), validation.Max(MaxLength)),
	)
}

// TalkModel - wire shape of a talk. Speaker is a nested SpeakerModel;
// on input only its speaker_id is used.
type TalkModel struct {
	TalkID   int           `json:"talk_id"`
	Title    string        `json:"title"`
	Abstract string        `json:"abstract"`
	Level    int           `json:"level"`
	Speaker  *SpeakerModel `json:"speaker,omitempty"`
}

// Validate - kiểm tra nội dung talk (không kiểm tra speaker, xem service)
func (m TalkModel) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&m.Abstract, validation.Length(0, MaxAbstractLength)),
		validation.Field(&m.Level, validation.Min(MinLevel)),
	)
}

// RequestedSpeakerID returns the speaker id carried by the payload, or 0.
func (m TalkModel) RequestedSpeakerID() int {
	if m.Speaker == nil {
		return 0
	}
	return m.Speaker.SpeakerID
}

type SpeakerModel struct {
	SpeakerID  int    `json:"speaker_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Bio        string `json:"bio"`
	Company    string `json:"company"`
	CompanyURL string `json:"company_url"`
	BlogURL    string `json:"blog_url"`
	Twitter    string `json:"twitter"`
	GitHub     string `json:"github"`
}
