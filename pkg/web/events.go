package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/proto"
)

// EventsController registers the read-only event routes.
func EventsController(_ context.Context, r *mux.Router) {
	s := r.PathPrefix("/api/v1/guilds/{guild:[0-9]+}").Subrouter()
	s.HandleFunc("/events", getEvents).Methods(http.MethodGet)
	s.HandleFunc("/events/{event:[0-9]+}", getEvent).Methods(http.MethodGet)
}

func parseVar(r *http.Request, name string) (proto.ID, bool) {
	id, err := proto.ParseID(mux.Vars(r)[name])
	return id, err == nil
}

func getEvents(w http.ResponseWriter, r *http.Request) {
	guild, ok := parseVar(r, "guild")
	if !ok {
		renderBadRequest(w, r)
		return
	}

	be := backend.FromContext(r.Context())
	events := be.Events(r.Context(), guild)
	if events == nil {
		events = []proto.Event{}
	}
	renderJSON(w, r, events)
}

func getEvent(w http.ResponseWriter, r *http.Request) {
	guild, ok := parseVar(r, "guild")
	if !ok {
		renderBadRequest(w, r)
		return
	}
	id, ok := parseVar(r, "event")
	if !ok {
		renderBadRequest(w, r)
		return
	}

	be := backend.FromContext(r.Context())
	e, ok := be.Get(r.Context(), guild, id)
	if !ok {
		renderNotFound(w, r)
		return
	}
	renderJSON(w, r, e)
}
