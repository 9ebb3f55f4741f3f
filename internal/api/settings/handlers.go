// internal/api/settings/handlers.go
package settings

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/api/apiutil"
	"github.com/codr1/CourtMaster/internal/booking"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

const settingsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

// HandleSettingsGet serves GET /api/v1/settings. The first read stores the
// configured defaults.
func HandleSettingsGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), settingsQueryTimeout)
	defer cancel()

	pricing, err := svc.Pricing(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load settings")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, pricing); err != nil {
		logger.Error().Err(err).Msg("Failed to write settings response")
	}
}

// HandleSettingsSave serves POST /api/v1/settings.
func HandleSettingsSave(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req booking.PricingConfig
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), settingsQueryTimeout)
	defer cancel()

	saved, err := svc.SavePricing(ctx, req)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to save settings")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, saved); err != nil {
		logger.Error().Err(err).Msg("Failed to write settings response")
	}
}

func loadService() *booking.Service {
	return service
}
