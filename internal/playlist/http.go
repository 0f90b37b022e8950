// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/film"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// Handler implements the HTTP layer for playlist management.
type Handler struct {
	playlistService *Service
}

// NewHandler constructs a new playlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{playlistService: service}
}

// Routes returns a [chi.Router] configured with the playlist domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Lifecycle
	router.Post("/", handler.create)
	router.Get("/", handler.search)
	router.Get("/{playlistID}", handler.get)
	router.Delete("/{playlistID}", handler.remove)

	// Metadata
	router.Patch("/{playlistID}/name", handler.rename)
	router.Patch("/{playlistID}/description", handler.setDescription)
	router.Patch("/{playlistID}/publicity", handler.setPublicity)

	// Collaborators
	router.Put("/{playlistID}/collaborators/{userID}", handler.addCollaborator)
	router.Delete("/{playlistID}/collaborators/{userID}", handler.removeCollaborator)

	// Content
	router.Get("/{playlistID}/content", handler.content)
	router.Put("/{playlistID}/content/{filmID}", handler.addItem)
	router.Delete("/{playlistID}/content/{filmID}", handler.removeItem)

	return router
}

// createRequest defines the expected JSON payload for playlist creation.
type createRequest struct {
	Name          string       `json:"name"`
	Description   *string      `json:"description"`
	IsPublic      bool         `json:"is_public"`
	GenAttrs      *film.Filter `json:"gen_attrs"`
	Collaborators []string     `json:"collaborators"`
}

/*
POST /api/v1/playlists.

Description: Creates a playlist owned by the authenticated user. Supplying
gen_attrs makes it auto-filling; without an explicit description one is
generated from the saved filter.

Response:
  - 201: Playlist
  - 400: ErrInvalidJSON/Validation
  - 401: ErrUnauthorized
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 120)
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 1000)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.playlistService.Create(request.Context(), identity, CreateInput{
		Name:          input.Name,
		Description:   input.Description,
		IsPublic:      input.IsPublic,
		GenAttrs:      input.GenAttrs,
		Collaborators: input.Collaborators,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/playlists?owner=&name=&public=.

Description: Lists playlists the requester may read, optionally narrowed by
owner, fuzzy name, or publicity.
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()

	if owner := query.Get("owner"); owner != "" && query.Get("name") == "" && query.Get("public") == "" {
		playlists, err := handler.playlistService.GetByOwner(request.Context(), identity, owner)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, playlists)
		return
	}

	filter := ListFilter{}
	if owner := query.Get("owner"); owner != "" {
		filter.OwnerID = &owner
	}
	if name := query.Get("name"); name != "" {
		filter.Name = &name
	}
	if public := query.Get("public"); public != "" {
		isPublic := public == "true"
		filter.IsPublic = &isPublic
	}

	playlists, err := handler.playlistService.Search(request.Context(), identity, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlists)
}

/*
GET /api/v1/playlists/{playlistID}.

Response:
  - 200: Playlist
  - 404: ErrNotFound: Absent or not readable (existence is masked)
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.playlistService.Get(request.Context(), identity, chi.URLParam(request, "playlistID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

/*
DELETE /api/v1/playlists/{playlistID}.
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.playlistService.Delete(request.Context(), identity, chi.URLParam(request, "playlistID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Metadata Endpoints

type renameRequest struct {
	Name string `json:"name"`
}

/*
PATCH /api/v1/playlists/{playlistID}/name.
*/
func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input renameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 120)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.playlistService.Rename(request.Context(), identity,
		chi.URLParam(request, "playlistID"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

type setDescriptionRequest struct {
	Description *string `json:"description"`
}

/*
PATCH /api/v1/playlists/{playlistID}/description.
*/
func (handler *Handler) setDescription(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setDescriptionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Description != nil {
		v := &validate.Validator{}
		v.MaxLen("description", *input.Description, 1000)
		if err := v.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	p, err := handler.playlistService.SetDescription(request.Context(), identity,
		chi.URLParam(request, "playlistID"), input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

type setPublicityRequest struct {
	IsPublic bool `json:"is_public"`
}

/*
PATCH /api/v1/playlists/{playlistID}/publicity.
*/
func (handler *Handler) setPublicity(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setPublicityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.playlistService.SetPublicity(request.Context(), identity,
		chi.URLParam(request, "playlistID"), input.IsPublic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

// # Collaborator Endpoints

/*
PUT /api/v1/playlists/{playlistID}/collaborators/{userID}.

Response:
  - 200: Playlist: Updated collaborator set
  - 403: ErrForbidden: Requester is not the owner
  - 409: ErrConflict: User already collaborates
*/
func (handler *Handler) addCollaborator(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.playlistService.AddCollaborator(request.Context(), identity,
		chi.URLParam(request, "playlistID"), chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

/*
DELETE /api/v1/playlists/{playlistID}/collaborators/{userID}.
*/
func (handler *Handler) removeCollaborator(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.playlistService.RemoveCollaborator(request.Context(), identity,
		chi.URLParam(request, "playlistID"), chi.URLParam(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

// # Content Endpoints

/*
GET /api/v1/playlists/{playlistID}/content.

Description: Returns the playlist items. An owner read of an auto-filling
playlist synchronizes it with the saved filter first.
*/
func (handler *Handler) content(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.playlistService.Content(request.Context(), identity,
		chi.URLParam(request, "playlistID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
PUT /api/v1/playlists/{playlistID}/content/{filmID}.
*/
func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.playlistService.AddItem(request.Context(), identity,
		chi.URLParam(request, "playlistID"), chi.URLParam(request, "filmID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
DELETE /api/v1/playlists/{playlistID}/content/{filmID}.
*/
func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.playlistService.RemoveItem(request.Context(), identity,
		chi.URLParam(request, "playlistID"), chi.URLParam(request, "filmID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
