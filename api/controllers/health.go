package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/pkg/config"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency; any failure flips the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, gcsP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TS-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		checks := map[string]pinger{
			"database": dbP,
			"redis":    redisP,
			"gcs":      gcsP,
		}
		statuses := make(map[string]string, len(checks))
		for name, p := range checks {
			if p == nil {
				statuses[name] = "skipped"
				continue
			}
			if pingErr := p.Ping(ctx); pingErr != nil {
				statuses[name] = "down"
				err = multierr.Append(err, fmt.Errorf("%s: %w", name, pingErr))
				continue
			}
			statuses[name] = "up"
		}

		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check failed").
					WithDetails(statuses))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
