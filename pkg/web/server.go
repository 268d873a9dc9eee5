package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns the handler serving the health probes and the events
// API. Requests carry the config, backend, bot, store and a request logger
// in their context.
func NewRouter(ctx context.Context) http.Handler {
	logger := log.FromContext(ctx).WithPrefix("http")

	router := mux.NewRouter()
	router.StrictSlash(true)
	HealthController(ctx, router)
	EventsController(ctx, router)
	router.NotFoundHandler = http.HandlerFunc(renderNotFound)
	router.MethodNotAllowedHandler = renderStatus(http.StatusMethodNotAllowed)

	var h http.Handler = router
	h = NewLoggingMiddleware(h, logger)
	h = NewContextHandler(ctx)(h)
	h = handlers.ProxyHeaders(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)(h)

	return h
}
