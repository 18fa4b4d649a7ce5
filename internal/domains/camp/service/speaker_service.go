package service

import (
	"context"
	"fmt"

	"codecamp-backend/internal/domains/camp/mapper"
	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/repository"
)

type speakerService struct {
	repos  repository.Factory
	mapper *mapper.Mapper
}

func NewSpeakerService(repos repository.Factory, m *mapper.Mapper) SpeakerServiceInterface {
	return &speakerService{repos: repos, mapper: m}
}

func (s *speakerService) Get(ctx context.Context, speakerID int) (*model.SpeakerModel, error) {
	speaker, err := s.repos.New().GetSpeaker(ctx, speakerID)
	if err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	if speaker == nil {
		return nil, model.ErrSpeakerNotFound
	}

	view := s.mapper.SpeakerToModel(speaker)
	return &view, nil
}

func (s *speakerService) Create(ctx context.Context, req *model.SpeakerModel) (*model.SpeakerModel, string, error) {
	repo := s.repos.New()

	speaker := s.mapper.ToSpeaker(req)
	if err := repo.Add(speaker); err != nil {
		return nil, "", err
	}

	ok, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", model.ErrNothingSaved
	}

	view := s.mapper.SpeakerToModel(speaker)
	return &view, SpeakerLocator(speaker.SpeakerID), nil
}
