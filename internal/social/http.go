// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// Handler implements the HTTP layer for profiles and subscriptions.
type Handler struct {
	socialService *Service
}

// NewHandler constructs a new social [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{socialService: service}
}

// Routes returns a [chi.Router] configured with the community endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.search)
	router.Get("/{userID}", handler.getProfile)
	router.Patch("/{userID}", handler.updateProfile)

	router.Get("/{userID}/subscribers", handler.getSubscribers)
	router.Get("/{userID}/subscribes", handler.getSubscribes)
	router.Put("/{userID}/subscription", handler.subscribe)
	router.Delete("/{userID}/subscription", handler.unsubscribe)

	router.Get("/{userID}/actions", handler.getActionHistory)

	return router
}

/*
GET /api/v1/users?username=.

Description: Fuzzy username search. Both public and private accounts appear;
private content stays gated behind the profile endpoints.
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredIdentity(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := request.URL.Query().Get("username")
	v := &validate.Validator{}
	v.Required("username", username)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	previews, err := handler.socialService.SearchProfiles(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, previews)
}

/*
GET /api/v1/users/{userID}.

Response:
  - 200: Profile
  - 403: ErrForbidden: Private profile, requester is neither owner nor admin
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.socialService.GetProfile(request.Context(), identity,
		chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PATCH /api/v1/users/{userID}.

Description: Partial profile update; absent fields are left untouched.
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var update ProfileUpdate
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if update.Username != nil {
		v.Required("username", *update.Username).MaxLen("username", *update.Username, 50)
	}
	if update.Bio != nil {
		v.MaxLen("bio", *update.Bio, 1000)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.socialService.UpdateProfile(request.Context(), identity,
		chi.URLParam(request, "userID"), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/users/{userID}/subscribers.
*/
func (handler *Handler) getSubscribers(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	previews, err := handler.socialService.GetSubscribers(request.Context(), identity,
		chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, previews)
}

/*
GET /api/v1/users/{userID}/subscribes.
*/
func (handler *Handler) getSubscribes(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	previews, err := handler.socialService.GetSubscribes(request.Context(), identity,
		chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, previews)
}

/*
PUT /api/v1/users/{userID}/subscription.

Response:
  - 204: Edge created
  - 400: ErrValidation: Self-subscription
  - 403: ErrForbidden: Target profile is private
  - 409: ErrConflict: Already subscribed
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.socialService.Subscribe(request.Context(), identity,
		chi.URLParam(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/users/{userID}/subscription.
*/
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.socialService.Unsubscribe(request.Context(), identity,
		chi.URLParam(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/users/{userID}/actions.

Description: The target's action history, visible to the owner, admins, and
the target's subscribers.
*/
func (handler *Handler) getActionHistory(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.socialService.GetActionHistory(request.Context(), identity,
		chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
