package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/repository"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

type Service struct {
	repo  repository.SettingsRepository
	cache *gocache.Cache
}

func NewService(repo repository.SettingsRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

// Get returns the account's settings, or defaults when nothing has been
// saved yet. Settings are read on every reminder composition, so reads
// are served from a short-lived cache.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*model.ClinicSettings, error) {
	if cached, ok := s.cache.Get(userID.String()); ok {
		settings := *cached.(*model.ClinicSettings)
		return &settings, nil
	}

	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return model.DefaultSettings(userID), nil
		}
		return nil, err
	}

	s.cache.Set(userID.String(), settings, gocache.DefaultExpiration)
	copied := *settings
	return &copied, nil
}

// Save upserts the single settings row for the account.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *model.SaveSettingsRequest) (*model.ClinicSettings, error) {
	settings := &model.ClinicSettings{
		UserID:           userID,
		Name:             req.Name,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		OpeningTime:      req.OpeningTime,
		ClosingTime:      req.ClosingTime,
		ReminderTemplate: req.ReminderTemplate,
	}
	if settings.OpeningTime == "" {
		settings.OpeningTime = "08:00"
	}
	if settings.ClosingTime == "" {
		settings.ClosingTime = "18:00"
	}

	if existing, err := s.repo.Get(ctx, userID); err == nil {
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.cache.Set(userID.String(), settings, gocache.DefaultExpiration)
	copied := *settings
	return &copied, nil
}
