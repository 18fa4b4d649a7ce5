package repository

import (
	"context"
	"time"

	"codecamp-backend/internal/domains/camp/model"
)

// Repository is one unit-of-work over the camp graph.
//
// Reads go straight to the store. Add, Update and Delete only stage a
// change; nothing is persisted until SaveChanges commits the staged set as
// one transaction. A Repository is not safe for concurrent use: obtain a
// fresh one per request from a Factory.
//
// Lookups report "absent" as (nil, nil), never as an error.
type Repository interface {
	// GetAllCamps returns every camp ordered by moniker. Talks (with their
	// speakers) are loaded only when includeTalks is true; otherwise Talks is nil.
	GetAllCamps(ctx context.Context, includeTalks bool) ([]*model.Camp, error)

	GetCamp(ctx context.Context, moniker string, includeTalks bool) (*model.Camp, error)

	// GetCampsByEventDate matches on the calendar date of date, as seen in
	// its own location. The time of day is ignored.
	GetCampsByEventDate(ctx context.Context, date time.Time, includeTalks bool) ([]*model.Camp, error)

	// GetTalksByMoniker returns an empty slice both when the camp has no
	// talks and when the camp does not exist.
	GetTalksByMoniker(ctx context.Context, moniker string) ([]*model.Talk, error)

	// GetTalkByMoniker returns the talk only if it belongs to the camp. With
	// includeSpeaker false the Speaker carries just its SpeakerID.
	GetTalkByMoniker(ctx context.Context, moniker string, talkID int, includeSpeaker bool) (*model.Talk, error)

	GetSpeaker(ctx context.Context, speakerID int) (*model.Speaker, error)

	// Add stages an insert of a *Camp, *Talk or *Speaker. A talk may point
	// at a camp or speaker added earlier in the same unit-of-work.
	Add(e model.Entity) error

	// Update stages a write of the content fields of a persisted *Camp or
	// *Talk. A camp's moniker and a talk's camp are never written.
	Update(e model.Entity) error

	// Delete stages removal of a persisted *Camp (cascading to its talks)
	// or *Talk. Speakers are never removed.
	Delete(e model.Entity) error

	// SaveChanges commits every staged change atomically. It reports true
	// iff at least one row was affected. On failure nothing is applied, the
	// staged set is kept and the error unwraps to model.ErrPersistence.
	// Generated ids are written back to the staged entities after commit.
	SaveChanges(ctx context.Context) (bool, error)
}

// Factory hands out per-request units of work.
type Factory interface {
	New() Repository
}
