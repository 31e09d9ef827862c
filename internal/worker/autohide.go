package worker

import (
	"context"
	"time"

	"recruitbot/internal/models"

	"github.com/rs/zerolog"
)

// HideStore hides users whose last activity is older than a cutoff.
type HideStore interface {
	HideInactive(ctx context.Context, statuses []models.Status, before time.Time) (int64, error)
}

// AutoHider periodically hides idle dialogs from the operator lists.
type AutoHider struct {
	store            HideStore
	interval         time.Duration
	registrationIdle time.Duration
	registeredIdle   time.Duration
	now              func() time.Time
	logger           *zerolog.Logger
}

func NewAutoHider(store HideStore, interval, registrationIdle, registeredIdle time.Duration, logger *zerolog.Logger) *AutoHider {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &AutoHider{
		store:            store,
		interval:         interval,
		registrationIdle: registrationIdle,
		registeredIdle:   registeredIdle,
		now:              time.Now,
		logger:           logger,
	}
}

// registrationStatuses скрываются после короткого простоя.
var registrationStatuses = []models.Status{
	models.StatusChatting,
	models.StatusWaitingPhotos,
	models.StatusAskingWorkHours,
	models.StatusAskingExperience,
	models.StatusPendingReview,
	models.StatusHelpingRegistration,
	models.StatusWaitingScreenshot,
	models.StatusWaitingAdmin,
}

// Start runs RunOnce every interval until ctx is done.
func (h *AutoHider) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.logger.Info().Dur("interval", h.interval).Msg("auto-hide started")
	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("auto-hide stopped")
			return
		case <-ticker.C:
			if _, err := h.RunOnce(ctx); err != nil {
				h.logger.Error().Err(err).Msg("auto-hide pass failed")
			}
		}
	}
}

// RunOnce hides idle registration-phase and registered users.
func (h *AutoHider) RunOnce(ctx context.Context) (int64, error) {
	now := h.now()

	early, err := h.store.HideInactive(ctx, registrationStatuses, now.Add(-h.registrationIdle))
	if err != nil {
		return 0, err
	}
	late, err := h.store.HideInactive(ctx, []models.Status{models.StatusRegistered}, now.Add(-h.registeredIdle))
	if err != nil {
		return early, err
	}

	if total := early + late; total > 0 {
		h.logger.Info().Int64("hidden", total).Msg("auto-hide pass")
	}
	return early + late, nil
}
