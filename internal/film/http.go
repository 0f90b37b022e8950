// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
)

// Handler implements the HTTP layer for the film domain.
type Handler struct {
	filmService *Service
}

// NewHandler constructs a new film [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{filmService: service}
}

// Routes returns a [chi.Router] configured with the film domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Catalog search
	router.Get("/search", handler.externalSearch)

	// Personal collection
	router.Get("/collection", handler.getCollection)
	router.Get("/collection/search", handler.localSearch)
	router.Post("/collection/{filmID}", handler.addToUnwatched)
	router.Patch("/collection/{filmID}/status", handler.setWatchStatus)
	router.Put("/collection/{filmID}/rating", handler.setRating)
	router.Delete("/collection/{filmID}", handler.removeFromCollection)

	// Single entry resolution
	router.Get("/{filmID}", handler.get)

	return router
}

// # Resolution Endpoints

/*
GET /api/v1/films/{filmID}?is_series=.

Description: Resolves a film through the three lookup tiers. A series
request returns one entry per season.

Response:
  - 200: []Film: The resolved entries
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: No tier could resolve the id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filmID := chi.URLParam(request, "filmID")
	if filmID == "" {
		respond.Error(writer, request, apperr.NotFound("Film"))
		return
	}
	isSeries, _ := strconv.ParseBool(request.URL.Query().Get("is_series"))

	films, err := handler.filmService.Get(request.Context(), identity, filmID, isSeries)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

/*
GET /api/v1/films/search.

Description: Searches the external catalog. Anonymous callers get plain
results; authenticated callers additionally get the AlreadyAdded marker.
Unknown query parameters are ignored.

Response:
  - 200: []Film: Catalog candidates (possibly empty)
  - 502/503: Upstream failures
*/
func (handler *Handler) externalSearch(writer http.ResponseWriter, request *http.Request) {
	filter := ParseFilter(request.URL.Query())
	identity := requestutil.OptionalIdentity(request)

	films, err := handler.filmService.ExternalSearch(request.Context(), identity, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

/*
GET /api/v1/films/collection/search.

Description: Searches the authenticated user's own collection with the same
criteria grammar as the catalog search, paginated.
*/
func (handler *Handler) localSearch(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ParseFilter(request.URL.Query())

	films, err := handler.filmService.LocalSearch(request.Context(), identity, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

// # Collection Endpoints

/*
GET /api/v1/films/collection?watched=.

Description: Lists the user's collection; the optional watched parameter
narrows to one watch state.
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var films []*Film
	if raw := request.URL.Query().Get("watched"); raw != "" {
		watched, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			respond.Error(writer, request, apperr.ValidationError("watched must be a boolean"))
			return
		}
		films, err = handler.filmService.GetList(request.Context(), identity, watched)
	} else {
		films, err = handler.filmService.GetAll(request.Context(), identity)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, films)
}

/*
POST /api/v1/films/collection/{filmID}.

Description: Attaches a film to the user's collection in the unwatched
state, resolving and caching it first if needed.

Response:
  - 201: Created
  - 404: ErrNotFound: Unknown catalog id
  - 409: ErrConflict: Film already in the collection
*/
func (handler *Handler) addToUnwatched(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filmID := chi.URLParam(request, "filmID")
	if err := handler.filmService.AddToUnwatched(request.Context(), identity, filmID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"film_id": filmID})
}

// setWatchStatusRequest defines the expected JSON payload for status flips.
type setWatchStatusRequest struct {
	Watched bool `json:"watched"`
}

/*
PATCH /api/v1/films/collection/{filmID}/status.
*/
func (handler *Handler) setWatchStatus(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setWatchStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	filmID := chi.URLParam(request, "filmID")
	if err := handler.filmService.SetWatchStatus(request.Context(), identity, filmID, input.Watched); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/films/collection/{filmID}/rating.

Description: Replaces the user's multi-aspect rating wholesale. Omitted
aspects are cleared, out-of-scale values are rejected.
*/
func (handler *Handler) setRating(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ComplexRating
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	filmID := chi.URLParam(request, "filmID")
	if err := handler.filmService.SetRating(request.Context(), identity, filmID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/films/collection/{filmID}.
*/
func (handler *Handler) removeFromCollection(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filmID := chi.URLParam(request, "filmID")
	if err := handler.filmService.Remove(request.Context(), identity, filmID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
