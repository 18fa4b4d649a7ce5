package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamp_Defaults(t *testing.T) {
	c := NewCamp("ATL2024")

	assert.Equal(t, "ATL2024", c.Moniker)
	assert.Equal(t, DefaultLength, c.Length)
	assert.False(t, c.IsScheduled())
	assert.Nil(t, c.Talks)
}

func TestCamp_Validate(t *testing.T) {
	tests := []struct {
		name    string
		camp    Camp
		wantErr bool
	}{
		{name: "valid", camp: Camp{Moniker: "ATL2024", Name: "Atlanta Code Camp", Length: 1}},
		{name: "missing moniker", camp: Camp{Name: "x", Length: 1}, wantErr: true},
		{name: "moniker with space", camp: Camp{Moniker: "ATL 2024", Name: "x", Length: 1}, wantErr: true},
		{name: "moniker with slash", camp: Camp{Moniker: "ATL/2024", Name: "x", Length: 1}, wantErr: true},
		{name: "missing name", camp: Camp{Moniker: "ATL2024", Length: 1}, wantErr: true},
		{name: "zero length", camp: Camp{Moniker: "ATL2024", Name: "x", Length: 0}, wantErr: true},
		{name: "too long", camp: Camp{Moniker: "ATL2024", Name: "x", Length: MaxLength + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.camp.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTalk_Validate(t *testing.T) {
	camp := &Camp{CampID: 1, Moniker: "ATL2024"}
	speaker := &Speaker{SpeakerID: 7}

	valid := Talk{Title: "Go", Level: 200, Camp: camp, Speaker: speaker}
	assert.NoError(t, valid.Validate())

	noSpeaker := valid
	noSpeaker.Speaker = nil
	assert.ErrorIs(t, noSpeaker.Validate(), ErrSpeakerRequired)

	noCamp := valid
	noCamp.Camp = nil
	assert.ErrorIs(t, noCamp.Validate(), ErrCampRequired)

	negativeLevel := valid
	negativeLevel.Level = -1
	assert.Error(t, negativeLevel.Validate())

	for _, level := range []int{0, 50, 400, 1000} {
		anyLevel := valid
		anyLevel.Level = level
		assert.NoError(t, anyLevel.Validate(), "level %d", level)
	}
}

func TestSpeaker(t *testing.T) {
	s := Speaker{FirstName: "Ada", LastName: "Lovelace", MiddleName: "King"}
	assert.NoError(t, s.Validate())

	s.BlogURL = "not a url"
	assert.Error(t, s.Validate())
}

func TestDateOnly(t *testing.T) {
	d := time.Date(2024, 9, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), DateOnly(d))
	assert.True(t, SameDate(d, time.Date(2024, 9, 14, 1, 0, 0, 0, time.UTC)))
	assert.False(t, SameDate(d, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, DateOnly(time.Time{}).IsZero())
}

func TestDateOnly_KeepsLocalCalendarDate(t *testing.T) {
	// 20:00 on the 14th at UTC-5 is already the 15th in UTC
	evening := time.Date(2024, 9, 14, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))

	assert.Equal(t, time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), DateOnly(evening))
	assert.True(t, SameDate(evening, time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, SameDate(evening, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	sept14 := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"date only", `"2024-09-14"`, sept14},
		{"utc timestamp", `"2024-09-14T00:00:00Z"`, sept14},
		{"offset evening keeps local date", `"2024-09-14T20:00:00-05:00"`, sept14},
		{"timestamp without zone", `"2024-09-14T09:30:00"`, sept14},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"14/09/2024"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewDate(time.Date(2024, 9, 14, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-09-14"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(out))
}

func TestCampModel_Validate(t *testing.T) {
	m := NewCampModel()
	m.Moniker = "ATL2024"
	m.Name = "Atlanta Code Camp"
	require.NoError(t, m.Validate())

	m.Length = 0
	assert.Error(t, m.Validate())
}

func TestErrorClassification(t *testing.T) {
	persist := NewPersistenceError("save changes", ErrDuplicateMoniker)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"camp not found", ErrCampNotFound, http.StatusNotFound, "CAMP_NOT_FOUND"},
		{"talk not found wrapped", fmt.Errorf("get talk: %w", ErrTalkNotFound), http.StatusNotFound, "TALK_NOT_FOUND"},
		{"duplicate moniker", ErrDuplicateMoniker, http.StatusConflict, "DUPLICATE_MONIKER"},
		{"speaker required", ErrSpeakerRequired, http.StatusBadRequest, "SPEAKER_REQUIRED"},
		{"speaker not found on create", ErrSpeakerNotFound, http.StatusBadRequest, "SPEAKER_NOT_FOUND"},
		{"persistence", persist, http.StatusInternalServerError, "DATABASE_FAILURE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, ToHTTPStatus(tt.err))
			assert.Equal(t, tt.code, ToErrorCode(tt.err))
		})
	}

	assert.ErrorIs(t, persist, ErrDuplicateMoniker)
	assert.ErrorIs(t, persist, ErrPersistence)
	assert.False(t, IsValidation(persist))
	assert.Same(t, persist, NewPersistenceError("again", persist))
}
