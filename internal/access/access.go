// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package access is the single authority for yes/no permission decisions.

Every engine (films, playlists, social) resolves ownership, collaboration,
and visibility through this package instead of duplicating the checks inline.

Architecture:

  - Pure: every function is a side-effect-free predicate over in-memory data.
  - Never raises: callers decide whether a denial becomes a 403 or is masked
    as a 404. The playlist engine masks, the social engine does not.
  - Leaf: depends on nothing but [sec] role/status types, so any package may
    import it without cycles.
*/
package access

import (
	"slices"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

// Identity is the authenticated acting user, as resolved by the session
// layer. Engines trust it unconditionally.
type Identity struct {
	UserID string
	Role   sec.UserRole
	Status sec.ProfileStatus
}

// IsOwner reports whether the identity owns the resource with the given
// owning-user id. Ownership is id equality only, never role.
func (identity Identity) IsOwner(ownerID string) bool {
	return identity.UserID == ownerID
}

// IsAdmin reports whether the identity carries the admin role.
// Admin bypasses ownership checks entirely.
func (identity Identity) IsAdmin() bool {
	return identity.Role == sec.RoleAdmin
}

// IsCollaborator reports whether the identity appears in a playlist's
// collaborator set. Collaborators gain read and content-contribution rights,
// never administrative ones.
func (identity Identity) IsCollaborator(collaborators []string) bool {
	return slices.Contains(collaborators, identity.UserID)
}

// IsCreator reports whether the identity originally contributed a playlist
// item. The check is against the stored creator id, not current collaborator
// membership: a creator keeps removal rights after being removed from the
// collaborator set.
func (identity Identity) IsCreator(creatorID string) bool {
	return identity.UserID == creatorID
}

// CanViewProfile applies the uniform visibility rule for profile-like
// resources: owner, admin, or anyone when the target is public.
func (identity Identity) CanViewProfile(targetID string, targetStatus sec.ProfileStatus) bool {
	return identity.IsOwner(targetID) || identity.IsAdmin() || targetStatus.IsPublic()
}

// CanReadPlaylist resolves the playlist read-access state machine:
// Owner, Collaborator, and PublicNonMember may read; PrivateNonMember may
// not. Callers mask a false result as not-found to avoid confirming that a
// private playlist exists.
func (identity Identity) CanReadPlaylist(ownerID string, collaborators []string, isPublic bool) bool {
	return identity.IsOwner(ownerID) || identity.IsCollaborator(collaborators) || isPublic
}

// CanContribute reports whether the identity may add content to a playlist.
func (identity Identity) CanContribute(ownerID string, collaborators []string) bool {
	return identity.IsOwner(ownerID) || identity.IsCollaborator(collaborators)
}
