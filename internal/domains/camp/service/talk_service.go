package service

import (
	"context"
	"fmt"

	"codecamp-backend/internal/domains/camp/mapper"
	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/repository"
	"codecamp-backend/pkg/cache"
	"codecamp-backend/pkg/logger"
)

// talkService implements TalkServiceInterface
type talkService struct {
	repos  repository.Factory
	mapper *mapper.Mapper
	cache  cache.Cache
}

func NewTalkService(repos repository.Factory, m *mapper.Mapper, c cache.Cache) TalkServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	return &talkService{repos: repos, mapper: m, cache: c}
}

// List does not tell a missing camp from an empty one: both give an empty list.
func (s *talkService) List(ctx context.Context, moniker string) ([]model.TalkModel, error) {
	talks, err := s.repos.New().GetTalksByMoniker(ctx, moniker)
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}
	return s.mapper.TalksToModels(talks), nil
}

func (s *talkService) Get(ctx context.Context, moniker string, talkID int) (*model.TalkModel, error) {
	talk, err := s.repos.New().GetTalkByMoniker(ctx, moniker, talkID, true)
	if err != nil {
		return nil, fmt.Errorf("get talk: %w", err)
	}
	if talk == nil {
		return nil, model.ErrTalkNotFound
	}

	view := s.mapper.TalkToModel(talk)
	return &view, nil
}

// Create requires an existing camp and an existing speaker.
func (s *talkService) Create(ctx context.Context, moniker string, req *model.TalkModel) (*model.TalkModel, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	repo := s.repos.New()

	camp, err := repo.GetCamp(ctx, moniker, false)
	if err != nil {
		return nil, "", fmt.Errorf("get camp: %w", err)
	}
	if camp == nil {
		return nil, "", model.ErrCampNotFound
	}

	speakerID := req.RequestedSpeakerID()
	if speakerID == 0 {
		return nil, "", model.ErrSpeakerRequired
	}
	speaker, err := repo.GetSpeaker(ctx, speakerID)
	if err != nil {
		return nil, "", fmt.Errorf("get speaker: %w", err)
	}
	if speaker == nil {
		return nil, "", model.ErrSpeakerNotFound
	}

	talk := s.mapper.ToTalk(req)
	talk.Camp = camp
	talk.Speaker = speaker
	if err := repo.Add(talk); err != nil {
		return nil, "", err
	}

	ok, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", model.ErrNothingSaved
	}
	invalidateCampViews(ctx, s.cache)

	logger.Ctx(ctx).Info().
		Str("moniker", moniker).
		Int("talk_id", talk.TalkID).
		Int("speaker_id", speaker.SpeakerID).
		Msg("talk created")

	view := s.mapper.TalkToModel(talk)
	return &view, TalkLocator(moniker, talk.TalkID), nil
}

// Update merges content fields. The speaker is reassigned only when the
// payload names a different speaker that exists; an unknown id is ignored.
// The camp link never changes.
func (s *talkService) Update(ctx context.Context, moniker string, talkID int, req *model.TalkModel) (*model.TalkModel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo := s.repos.New()

	talk, err := repo.GetTalkByMoniker(ctx, moniker, talkID, true)
	if err != nil {
		return nil, fmt.Errorf("get talk: %w", err)
	}
	if talk == nil {
		return nil, model.ErrTalkNotFound
	}

	s.mapper.MergeTalk(req, talk)

	if id := req.RequestedSpeakerID(); id != 0 && id != talk.SpeakerID() {
		speaker, err := repo.GetSpeaker(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get speaker: %w", err)
		}
		if speaker != nil {
			talk.Speaker = speaker
		} else {
			logger.Ctx(ctx).Debug().Int("speaker_id", id).Int("talk_id", talkID).Msg("unknown speaker on talk update ignored")
		}
	}

	if err := repo.Update(talk); err != nil {
		return nil, err
	}

	changed, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, err
	}
	if changed {
		invalidateCampViews(ctx, s.cache)
	}

	view := s.mapper.TalkToModel(talk)
	return &view, nil
}

func (s *talkService) Delete(ctx context.Context, moniker string, talkID int) error {
	repo := s.repos.New()

	talk, err := repo.GetTalkByMoniker(ctx, moniker, talkID, false)
	if err != nil {
		return fmt.Errorf("get talk: %w", err)
	}
	if talk == nil {
		return model.ErrTalkNotFound
	}

	if err := repo.Delete(talk); err != nil {
		return err
	}

	ok, err := repo.SaveChanges(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNothingSaved
	}
	invalidateCampViews(ctx, s.cache)
	return nil
}
