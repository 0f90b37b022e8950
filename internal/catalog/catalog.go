// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package catalog implements the client for the external film metadata API.

It satisfies the film domain's ExternalCatalog contract over plain HTTP:
no retries, no backoff, one bounded attempt per call. Failures map to
SERVICE_UNAVAILABLE so the resolution engine can distinguish an upstream
outage from a genuine miss.
*/
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/constants"
	"github.com/cinelog/cinelog/pkg/textfold"
)

// Client talks to the external catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient constructs a catalog [Client]. baseURL carries no trailing slash.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.CatalogRequestTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// compile-time contract check
var _ film.ExternalCatalog = (*Client)(nil)

// # ExternalCatalog Implementation

/*
Get fetches a single entry by catalog id.

Returns:
  - *film.Film: The hydrated entry, nil when the catalog has no such id
  - error: Transport failures or non-2xx upstream responses
*/
func (client *Client) Get(ctx context.Context, id string) (*film.Film, error) {
	var dto movieDTO
	found, err := client.getJSON(ctx, "/movie/"+url.PathEscape(id), nil, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return dto.toFilm(), nil
}

/*
SearchByName runs the catalog's text search endpoint.

Description: Only the folded query and the pagination knobs are forwarded;
every other criterion on the filter is the caller's job to apply in memory.
*/
func (client *Client) SearchByName(ctx context.Context, name string, filter *film.APIFilter) ([]*film.Film, error) {
	values := url.Values{}
	values.Set("query", textfold.Fold(name))
	if filter != nil {
		if filter.Page != nil {
			values.Set("page", fmt.Sprintf("%d", *filter.Page))
		}
		if filter.Limit != nil {
			values.Set("limit", fmt.Sprintf("%d", *filter.Limit))
		}
	}

	return client.searchMovies(ctx, "/movie/search", values)
}

// SearchByFilters runs the catalog's parametric search with the full
// encoded criteria set.
func (client *Client) SearchByFilters(ctx context.Context, filter *film.APIFilter) ([]*film.Film, error) {
	return client.searchMovies(ctx, "/movie", filter.Values())
}

// GetAllSeasons fetches the per-season entries of a series, untransformed.
func (client *Client) GetAllSeasons(ctx context.Context, id string) ([]*film.Film, error) {
	return client.searchMovies(ctx, "/movie/"+url.PathEscape(id)+"/seasons", nil)
}

// # Transport

// searchEnvelope is the list response shape shared by every search endpoint.
type searchEnvelope struct {
	Docs  []movieDTO `json:"docs"`
	Total int        `json:"total"`
}

func (client *Client) searchMovies(ctx context.Context, path string, values url.Values) ([]*film.Film, error) {
	var envelope searchEnvelope
	found, err := client.getJSON(ctx, path, values, &envelope)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	films := make([]*film.Film, 0, len(envelope.Docs))
	for i := range envelope.Docs {
		films = append(films, envelope.Docs[i].toFilm())
	}
	return films, nil
}

// getJSON performs one authenticated GET and decodes the body.
//
// A 404 reports found=false without error; any other non-2xx status is an
// upstream failure.
func (client *Client) getJSON(ctx context.Context, path string, values url.Values, target any) (bool, error) {
	endpoint := client.baseURL + path
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("catalog_request_build_failed: %w", err))
	}
	request.Header.Set("X-API-KEY", client.apiKey)
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("catalog_request_failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return false, apperr.ServiceUnavailable("External catalog unavailable")
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return false, nil
	case response.StatusCode < 200 || response.StatusCode > 299:
		client.logger.Warn("catalog_unexpected_status",
			slog.String("path", path), slog.Int("status", response.StatusCode))
		return false, apperr.ServiceUnavailable("External catalog unavailable")
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return false, apperr.Internal(fmt.Errorf("catalog_decode_failed: %w", err))
	}
	return true, nil
}
