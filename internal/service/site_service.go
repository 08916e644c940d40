package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/repository"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

const (
	settingsCacheKey = "site:settings"
	settingsCacheTTL = 5 * time.Minute
)

var ErrSettingsExist = errors.New("site settings already exist")

// SiteService serves the settings and stats singletons. Settings are read on
// every public page, so they sit behind a short Redis cache when available.
type SiteService struct {
	site        interfaces.SiteRepository
	redisClient *redis.Client
}

func NewSiteService(site interfaces.SiteRepository, redisClient *redis.Client) *SiteService {
	return &SiteService{site: site, redisClient: redisClient}
}

func (s *SiteService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	if s.redisClient != nil {
		if raw, err := s.redisClient.Get(ctx, settingsCacheKey).Bytes(); err == nil {
			var cached models.SiteSettings
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	settings, err := s.site.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load site settings")
	}

	if s.redisClient != nil {
		if raw, err := json.Marshal(settings); err == nil {
			if err := s.redisClient.Set(ctx, settingsCacheKey, raw, settingsCacheTTL).Err(); err != nil {
				telemetry.Logger.Warn("Failed to cache site settings", zap.Error(err))
			}
		}
	}
	return settings, nil
}

func (s *SiteService) CreateSettings(ctx context.Context, settings *models.SiteSettings) error {
	if err := s.site.CreateSettings(ctx, settings); err != nil {
		if errors.Is(err, repository.ErrSingletonExists) {
			return ErrSettingsExist
		}
		return fmt.Errorf("failed to create site settings")
	}
	return nil
}

func (s *SiteService) UpdateSettings(ctx context.Context, settings *models.SiteSettings) error {
	if err := s.site.UpdateSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update site settings")
	}
	s.invalidate(ctx)
	return nil
}

func (s *SiteService) GetStats(ctx context.Context) (*models.SiteStats, error) {
	return s.site.GetStats(ctx)
}

func (s *SiteService) UpdateStats(ctx context.Context, stats *models.SiteStats) error {
	return s.site.UpdateStats(ctx, stats)
}

func (s *SiteService) invalidate(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, settingsCacheKey).Err(); err != nil {
		telemetry.Logger.Warn("Failed to invalidate settings cache", zap.Error(err))
	}
}
