package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength    = 100
	MaxAbstractLength = 4000
	MinLevel          = 0
)

// Talk belongs to exactly one Camp and references exactly one Speaker.
// Camp is assigned once, when the talk is created.
type Talk struct {
	TalkID   int
	Title    string
	Abstract string
	Level    int

	Speaker *Speaker
	Camp    *Camp
}

func (*Talk) entity() {}

// SpeakerID returns the referenced speaker id, or 0 when unset.
func (t *Talk) SpeakerID() int {
	if t.Speaker == nil {
		return 0
	}
	return t.Speaker.SpeakerID
}

// CampID returns the owning camp id, or 0 when unset.
func (t *Talk) CampID() int {
	if t.Camp == nil {
		return 0
	}
	return t.Camp.CampID
}

// Validate checks content fields and that both relationships are set.
// Whether the referenced rows exist is checked when the change is committed.
func (t *Talk) Validate() error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&t.Abstract, validation.Length(0, MaxAbstractLength)),
		// 0 = level chưa xác định
		validation.Field(&t.Level, validation.Min(MinLevel)),
	); err != nil {
		return err
	}

	if t.Camp == nil {
		return ErrCampRequired
	}
	if t.Speaker == nil {
		return ErrSpeakerRequired
	}
	return nil
}
