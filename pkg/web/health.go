package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/hackbot/hackbot/pkg/bot"
	"github.com/hackbot/hackbot/pkg/store"
)

var errNotConnected = errors.New("gateway session is not connected")

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := store.FromContext(ctx)
	b := bot.FromContext(ctx)

	errs := make([]error, 0)
	if st == nil {
		errs = append(errs, errors.New("no store"))
	} else if err := st.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("readiness check failed: %w", err))
	}
	if b == nil || !b.Connected() {
		errs = append(errs, errNotConnected)
	}

	if len(errs) > 0 {
		log.FromContext(ctx).Debug("not ready", "err", errors.Join(errs...))
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}

	renderStatus(http.StatusOK)(w, nil)
}
