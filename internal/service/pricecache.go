package service

import (
	"context"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/cache"
	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type priceCacheService struct {
	vehicles repository.VehicleRepository
	cache    cache.GroupMinimumCache
	clock    Clock
}

func NewPriceCacheService(vehicles repository.VehicleRepository, c cache.GroupMinimumCache, clock Clock) PriceCacheService {
	return &priceCacheService{vehicles: vehicles, cache: c, clock: clock}
}

func (s *priceCacheService) GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, time.Time, error) {
	snap, ok, err := s.cache.Get(ctx)
	if err != nil {
		// A broken cache backend degrades to a direct query.
		logger.ErrorContext(ctx, "Group-minimum cache read failed", "error", err)
	} else if ok {
		return snap.Data, snap.ComputedAt, nil
	}

	data, err := s.vehicles.GroupMinimums(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	fresh := &cache.Snapshot{Data: data, ComputedAt: s.clock.Now()}
	if err := s.cache.Set(ctx, fresh); err != nil {
		logger.ErrorContext(ctx, "Group-minimum cache write failed", "error", err)
	}
	return fresh.Data, fresh.ComputedAt, nil
}

func (s *priceCacheService) Refresh(ctx context.Context) error {
	data, err := s.vehicles.GroupMinimums(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, &cache.Snapshot{Data: data, ComputedAt: s.clock.Now()})
}

func (s *priceCacheService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.ErrorContext(ctx, "Group-minimum cache invalidation failed", "error", err)
	}
}
