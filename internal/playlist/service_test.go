// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package playlist

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// fakeRepository keeps playlists and items in memory.
type fakeRepository struct {
	playlists map[string]*Playlist
	items     map[string][]*Item
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		playlists: map[string]*Playlist{},
		items:     map[string][]*Item{},
	}
}

func (r *fakeRepository) Create(_ context.Context, p *Playlist) error {
	r.playlists[p.PlaylistID] = p
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) List(_ context.Context, filter ListFilter) ([]*Playlist, error) {
	var result []*Playlist
	for _, p := range r.playlists {
		if filter.OwnerID != nil && p.UserID != *filter.OwnerID {
			continue
		}
		if filter.IsPublic != nil && p.IsPublic != *filter.IsPublic {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakeRepository) UpdateMeta(_ context.Context, p *Playlist) error {
	stored, ok := r.playlists[p.PlaylistID]
	if !ok {
		return apperr.NotFound("Playlist")
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.IsPublic = p.IsPublic
	return nil
}

func (r *fakeRepository) SetCollaborators(_ context.Context, id string, collaborators []string) error {
	stored, ok := r.playlists[id]
	if !ok {
		return apperr.NotFound("Playlist")
	}
	stored.Collaborators = collaborators
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.playlists[id]; !ok {
		return apperr.NotFound("Playlist")
	}
	delete(r.playlists, id)
	delete(r.items, id)
	return nil
}

func (r *fakeRepository) AddItem(_ context.Context, item *Item) error {
	for _, existing := range r.items[item.PlaylistID] {
		if existing.FilmID == item.FilmID {
			return apperr.Conflict("Resource already exists")
		}
	}
	r.items[item.PlaylistID] = append(r.items[item.PlaylistID], item)
	r.playlists[item.PlaylistID].AdditionsCount++
	return nil
}

func (r *fakeRepository) AddItems(ctx context.Context, items []*Item) error {
	for _, item := range items {
		if err := r.AddItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepository) GetItem(_ context.Context, playlistID, filmID string) (*Item, error) {
	for _, item := range r.items[playlistID] {
		if item.FilmID == filmID {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Playlist item")
}

func (r *fakeRepository) RemoveItem(_ context.Context, playlistID, filmID string) error {
	items := r.items[playlistID]
	for i, item := range items {
		if item.FilmID == filmID {
			r.items[playlistID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Playlist item")
}

func (r *fakeRepository) ListItems(_ context.Context, playlistID string) ([]*Item, error) {
	return r.items[playlistID], nil
}

// fakeSearcher returns a canned film list and records who asked.
type fakeSearcher struct {
	films    []*film.Film
	queries  int
	lastUser string
}

func (s *fakeSearcher) LocalSearch(_ context.Context, identity access.Identity, _ *film.APIFilter) ([]*film.Film, error) {
	s.queries++
	s.lastUser = identity.UserID
	return s.films, nil
}

// fakeRecorder collects recorded action names.
type fakeRecorder struct {
	actions []string
}

func (r *fakeRecorder) RecordAction(_ context.Context, _ string, name string, _ map[string]any) error {
	r.actions = append(r.actions, name)
	return nil
}

func newTestService(repository Repository, films FilmSearcher) (*Service, *fakeRecorder) {
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, films, recorder, logger), recorder
}

func ownerIdentity() access.Identity {
	return access.Identity{UserID: "owner-1", Role: sec.RoleUser, Status: sec.StatusPublic}
}

func strangerIdentity() access.Identity {
	return access.Identity{UserID: "stranger-1", Role: sec.RoleUser, Status: sec.StatusPublic}
}

func seedPlaylist(repository *fakeRepository, mutate func(*Playlist)) *Playlist {
	p := &Playlist{
		PlaylistID: "pl-1",
		UserID:     "owner-1",
		Name:       "Evening picks",
		IsPublic:   false,
	}
	if mutate != nil {
		mutate(p)
	}
	repository.playlists[p.PlaylistID] = p
	return p
}

func TestService_Create_GeneratesDescriptionForAutofill(t *testing.T) {
	repository := newFakeRepository()
	service, recorder := newTestService(repository, &fakeSearcher{})

	created, err := service.Create(context.Background(), ownerIdentity(), CreateInput{
		Name:     "Noughties",
		GenAttrs: &film.Filter{Year: film.Between(2000, 2010)},
	})
	require.NoError(t, err)

	require.NotNil(t, created.Description)
	assert.Contains(t, *created.Description, "Auto-filled")
	assert.NotEmpty(t, created.PlaylistID)
	assert.Equal(t, []string{"playlist_created"}, recorder.actions)
}

func TestService_Create_FiltersSelfFromCollaborators(t *testing.T) {
	repository := newFakeRepository()
	service, _ := newTestService(repository, &fakeSearcher{})

	created, err := service.Create(context.Background(), ownerIdentity(), CreateInput{
		Name:          "Shared",
		Collaborators: []string{"owner-1", "friend-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"friend-1"}, created.Collaborators)
}

func TestService_Get_PrivateIsMaskedAsNotFound(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, nil)
	service, _ := newTestService(repository, &fakeSearcher{})

	_, err := service.Get(context.Background(), strangerIdentity(), "pl-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Publishing makes the same fetch succeed.
	repository.playlists["pl-1"].IsPublic = true
	p, err := service.Get(context.Background(), strangerIdentity(), "pl-1")
	require.NoError(t, err)
	assert.Equal(t, "Evening picks", p.Name)
}

func TestService_Get_CollaboratorReadsPrivate(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.Collaborators = []string{"friend-1"}
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	collaborator := access.Identity{UserID: "friend-1", Role: sec.RoleUser, Status: sec.StatusPublic}
	p, err := service.Get(context.Background(), collaborator, "pl-1")
	require.NoError(t, err)
	assert.Equal(t, "pl-1", p.PlaylistID)
}

func TestService_Rename_ReadableButNotOwnedIsForbidden(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.IsPublic = true
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	_, err := service.Rename(context.Background(), strangerIdentity(), "pl-1", "Hijacked")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Equal(t, "Evening picks", repository.playlists["pl-1"].Name)
}

func TestService_Rename_UnreadableStaysMasked(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, nil)
	service, _ := newTestService(repository, &fakeSearcher{})

	_, err := service.Rename(context.Background(), strangerIdentity(), "pl-1", "Hijacked")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_GetByOwner_StrangerSeesOnlyReadable(t *testing.T) {
	repository := newFakeRepository()
	repository.playlists["pub"] = &Playlist{PlaylistID: "pub", UserID: "owner-1", IsPublic: true}
	repository.playlists["priv"] = &Playlist{PlaylistID: "priv", UserID: "owner-1"}
	repository.playlists["shared"] = &Playlist{
		PlaylistID: "shared", UserID: "owner-1", Collaborators: []string{"stranger-1"},
	}
	service, _ := newTestService(repository, &fakeSearcher{})

	visible, err := service.GetByOwner(context.Background(), strangerIdentity(), "owner-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(visible))
	for _, p := range visible {
		ids = append(ids, p.PlaylistID)
	}
	assert.ElementsMatch(t, []string{"pub", "shared"}, ids)

	all, err := service.GetByOwner(context.Background(), ownerIdentity(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_AddCollaborator(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.Collaborators = []string{"friend-1"}
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	t.Run("owner_cannot_collaborate_with_self", func(t *testing.T) {
		_, err := service.AddCollaborator(context.Background(), ownerIdentity(), "pl-1", "owner-1")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_fails_without_mutation", func(t *testing.T) {
		_, err := service.AddCollaborator(context.Background(), ownerIdentity(), "pl-1", "friend-1")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
		assert.Equal(t, []string{"friend-1"}, repository.playlists["pl-1"].Collaborators)
	})

	t.Run("new_collaborator_is_appended", func(t *testing.T) {
		p, err := service.AddCollaborator(context.Background(), ownerIdentity(), "pl-1", "friend-2")
		require.NoError(t, err)
		assert.Equal(t, []string{"friend-1", "friend-2"}, p.Collaborators)
	})
}

func TestService_RemoveCollaborator_AbsentIsNotFound(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, nil)
	service, _ := newTestService(repository, &fakeSearcher{})

	_, err := service.RemoveCollaborator(context.Background(), ownerIdentity(), "pl-1", "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_AddItem_CollaboratorContributes(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.Collaborators = []string{"friend-1"}
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	collaborator := access.Identity{UserID: "friend-1", Role: sec.RoleUser, Status: sec.StatusPublic}
	item, err := service.AddItem(context.Background(), collaborator, "pl-1", "301")
	require.NoError(t, err)
	assert.Equal(t, "friend-1", item.CreatorID)
	assert.Equal(t, 1, repository.playlists["pl-1"].AdditionsCount)
}

func TestService_AddItem_PublicReaderCannotContribute(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.IsPublic = true
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	_, err := service.AddItem(context.Background(), strangerIdentity(), "pl-1", "301")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_RemoveItem_CreatorSurvivesCollaboratorRemoval(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.Collaborators = []string{"friend-1"}
		p.IsPublic = true
	})
	service, _ := newTestService(repository, &fakeSearcher{})

	collaborator := access.Identity{UserID: "friend-1", Role: sec.RoleUser, Status: sec.StatusPublic}
	_, err := service.AddItem(context.Background(), collaborator, "pl-1", "301")
	require.NoError(t, err)

	// Revoke collaboration; the stored creator still may remove their item.
	_, err = service.RemoveCollaborator(context.Background(), ownerIdentity(), "pl-1", "friend-1")
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(context.Background(), collaborator, "pl-1", "301"))
}

func TestService_RemoveItem_OtherReadersForbidden(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.IsPublic = true
	})
	repository.items["pl-1"] = []*Item{{PlaylistID: "pl-1", FilmID: "301", CreatorID: "owner-1"}}
	service, _ := newTestService(repository, &fakeSearcher{})

	err := service.RemoveItem(context.Background(), strangerIdentity(), "pl-1", "301")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_Content_OwnerReadAutofills(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.GenAttrs = &film.Filter{Year: film.Between(1990, 1999)}
	})
	repository.items["pl-1"] = []*Item{{PlaylistID: "pl-1", FilmID: "301", CreatorID: "owner-1"}}
	searcher := &fakeSearcher{films: []*film.Film{
		{FilmID: "301"},
		{FilmID: "302"},
	}}
	service, _ := newTestService(repository, searcher)

	items, err := service.Content(context.Background(), ownerIdentity(), "pl-1")
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.FilmID)
	}
	// 301 is already present, only 302 is added.
	assert.Equal(t, []string{"301", "302"}, ids)
	assert.Equal(t, "owner-1", searcher.lastUser)
	assert.Equal(t, "owner-1", items[1].CreatorID)
}

func TestService_Content_NonOwnerReadNeverMutates(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, func(p *Playlist) {
		p.GenAttrs = &film.Filter{Year: film.Between(1990, 1999)}
		p.IsPublic = true
	})
	searcher := &fakeSearcher{films: []*film.Film{{FilmID: "302"}}}
	service, _ := newTestService(repository, searcher)

	items, err := service.Content(context.Background(), strangerIdentity(), "pl-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, searcher.queries)
}

func TestService_Delete_RemovesPlaylistAndItems(t *testing.T) {
	repository := newFakeRepository()
	seedPlaylist(repository, nil)
	repository.items["pl-1"] = []*Item{{PlaylistID: "pl-1", FilmID: "301", CreatorID: "owner-1"}}
	service, _ := newTestService(repository, &fakeSearcher{})

	require.NoError(t, service.Delete(context.Background(), ownerIdentity(), "pl-1"))
	assert.Empty(t, repository.playlists)
	assert.Empty(t, repository.items)
}
