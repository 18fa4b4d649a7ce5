package service

import (
	"context"
	"fmt"
	"time"

	"codecamp-backend/internal/domains/camp/mapper"
	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/repository"
	"codecamp-backend/pkg/cache"
	"codecamp-backend/pkg/logger"
)

// Cache key layout. Only rendered views are cached, never entities.
const (
	campCachePattern   = "camps:*"
	campListKeyFmt     = "camps:list:%t"
	campMonikerKeyFmt  = "camps:moniker:%s:%t"
	defaultCampViewTTL = 5 * time.Minute
)

// campService implements CampServiceInterface
type campService struct {
	repos  repository.Factory
	mapper *mapper.Mapper
	cache  cache.Cache
	ttl    func() time.Duration // đọc từ config snapshot hiện tại
}

// NewCampService creates the camp orchestration service.
// ttl may be nil; views are then cached for defaultCampViewTTL.
func NewCampService(repos repository.Factory, m *mapper.Mapper, c cache.Cache, ttl func() time.Duration) CampServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	if ttl == nil {
		ttl = func() time.Duration { return defaultCampViewTTL }
	}
	return &campService{repos: repos, mapper: m, cache: c, ttl: ttl}
}

func (s *campService) List(ctx context.Context, includeTalks bool) ([]model.CampModel, error) {
	key := fmt.Sprintf(campListKeyFmt, includeTalks)

	var views []model.CampModel
	if s.cacheGet(ctx, key, &views) {
		return views, nil
	}

	camps, err := s.repos.New().GetAllCamps(ctx, includeTalks)
	if err != nil {
		return nil, fmt.Errorf("list camps: %w", err)
	}

	views = s.mapper.CampsToModels(camps)
	s.cacheSet(ctx, key, views)
	return views, nil
}

func (s *campService) Get(ctx context.Context, moniker string, includeTalks bool) (*model.CampModel, error) {
	key := fmt.Sprintf(campMonikerKeyFmt, moniker, includeTalks)

	var view model.CampModel
	if s.cacheGet(ctx, key, &view) {
		return &view, nil
	}

	camp, err := s.repos.New().GetCamp(ctx, moniker, includeTalks)
	if err != nil {
		return nil, fmt.Errorf("get camp: %w", err)
	}
	if camp == nil {
		return nil, model.ErrCampNotFound
	}

	view = s.mapper.CampToModel(camp)
	s.cacheSet(ctx, key, view)
	return &view, nil
}

// SearchByDate returns an empty slice when nothing matches.
func (s *campService) SearchByDate(ctx context.Context, date time.Time, includeTalks bool) ([]model.CampModel, error) {
	camps, err := s.repos.New().GetCampsByEventDate(ctx, date, includeTalks)
	if err != nil {
		return nil, fmt.Errorf("search camps: %w", err)
	}
	return s.mapper.CampsToModels(camps), nil
}

func (s *campService) Create(ctx context.Context, req *model.CampModel) (*model.CampModel, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	repo := s.repos.New()

	existing, err := repo.GetCamp(ctx, req.Moniker, false)
	if err != nil {
		return nil, "", fmt.Errorf("check moniker: %w", err)
	}
	if existing != nil {
		return nil, "", model.ErrDuplicateMoniker
	}

	camp := s.mapper.ToCamp(req)
	if err := repo.Add(camp); err != nil {
		return nil, "", err
	}

	locator := CampLocator(camp.Moniker)

	ok, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", model.ErrNothingSaved
	}
	s.invalidate(ctx)

	logger.Ctx(ctx).Info().
		Str("moniker", camp.Moniker).
		Int("camp_id", camp.CampID).
		Msg("camp created")

	view := s.mapper.CampToModel(camp)
	return &view, locator, nil
}

// Update merges content fields onto the stored camp. A payload moniker, if
// present, must match the path: monikers never change.
func (s *campService) Update(ctx context.Context, moniker string, req *model.CampModel) (*model.CampModel, error) {
	if req.Moniker == "" {
		req.Moniker = moniker
	}
	if req.Moniker != moniker {
		return nil, model.ErrMonikerImmutable
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo := s.repos.New()

	camp, err := repo.GetCamp(ctx, moniker, false)
	if err != nil {
		return nil, fmt.Errorf("get camp: %w", err)
	}
	if camp == nil {
		return nil, model.ErrCampNotFound
	}

	s.mapper.MergeCamp(req, camp)
	if err := repo.Update(camp); err != nil {
		return nil, err
	}

	// false = payload matched the stored row, not a failure
	changed, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, err
	}
	if changed {
		s.invalidate(ctx)
	}

	view := s.mapper.CampToModel(camp)
	return &view, nil
}

func (s *campService) Delete(ctx context.Context, moniker string) error {
	repo := s.repos.New()

	camp, err := repo.GetCamp(ctx, moniker, false)
	if err != nil {
		return fmt.Errorf("get camp: %w", err)
	}
	if camp == nil {
		return model.ErrCampNotFound
	}

	if err := repo.Delete(camp); err != nil {
		return err
	}

	ok, err := repo.SaveChanges(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNothingSaved
	}
	s.invalidate(ctx)

	logger.Ctx(ctx).Info().Str("moniker", moniker).Msg("camp deleted")
	return nil
}

// ── View cache ───────────────────────────────────────────────
// Cache failures never fail a request; they are logged and treated as misses.

func (s *campService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("camp view cache read failed")
		return false
	}
	return found
}

func (s *campService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl()); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("camp view cache write failed")
	}
}

func (s *campService) invalidate(ctx context.Context) {
	invalidateCampViews(ctx, s.cache)
}

// invalidateCampViews drops every cached camp view. Talk writes call it
// too, since camp views may embed talks.
func invalidateCampViews(ctx context.Context, c cache.Cache) {
	if err := c.DeletePattern(ctx, campCachePattern); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("camp view cache invalidation failed")
	}
}
