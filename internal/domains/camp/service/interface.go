package service

import (
	"context"
	"time"

	"codecamp-backend/internal/domains/camp/model"
)

// Every write follows the same protocol: validation reads on a fresh
// unit-of-work, stage the mapped mutation, SaveChanges. Create returns the
// canonical locator of the new resource alongside its view.

type CampServiceInterface interface {
	List(ctx context.Context, includeTalks bool) ([]model.CampModel, error)
	Get(ctx context.Context, moniker string, includeTalks bool) (*model.CampModel, error)
	SearchByDate(ctx context.Context, date time.Time, includeTalks bool) ([]model.CampModel, error)
	Create(ctx context.Context, req *model.CampModel) (*model.CampModel, string, error)
	Update(ctx context.Context, moniker string, req *model.CampModel) (*model.CampModel, error)
	Delete(ctx context.Context, moniker string) error
}

type TalkServiceInterface interface {
	List(ctx context.Context, moniker string) ([]model.TalkModel, error)
	Get(ctx context.Context, moniker string, talkID int) (*model.TalkModel, error)
	Create(ctx context.Context, moniker string, req *model.TalkModel) (*model.TalkModel, string, error)
	Update(ctx context.Context, moniker string, talkID int, req *model.TalkModel) (*model.TalkModel, error)
	Delete(ctx context.Context, moniker string, talkID int) error
}

type SpeakerServiceInterface interface {
	Get(ctx context.Context, speakerID int) (*model.SpeakerModel, error)
	Create(ctx context.Context, req *model.SpeakerModel) (*model.SpeakerModel, string, error)
}
