// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

// VisibilityClassification is the set of toggle actions available for an
// occurrence given its current exception list.
type VisibilityClassification string

const (
	// VisibilityOnlyHide means nothing is hidden yet; the only available
	// action is to hide the occurrence for some communities.
	VisibilityOnlyHide VisibilityClassification = "only-hide"
	// VisibilityOnlyShow means every other managed community already has the
	// occurrence hidden; the only available action is to restore visibility.
	VisibilityOnlyShow VisibilityClassification = "only-show"
	// VisibilityBoth means some communities are hidden and some are not.
	VisibilityBoth VisibilityClassification = "both"
)

// VisibilityAction is a hide or show toggle.
type VisibilityAction string

const (
	ActionHide VisibilityAction = "hide"
	ActionShow VisibilityAction = "show"
)

// VisibilityService resolves the visibility state of an occurrence and the
// candidate targets of hide/show toggles. All methods are pure; the
// classification must be recomputed whenever the exception list changes, never
// cached across selection changes.
type VisibilityService struct{}

// NewVisibilityService creates a new VisibilityService.
func NewVisibilityService() *VisibilityService {
	return &VisibilityService{}
}

// ClassifyVisibility determines which toggle actions are available for an
// occurrence of a public class, given the acting user's managed communities
// and the occurrence's exception list.
func (s *VisibilityService) ClassifyVisibility(
	managed []models.Community,
	exceptions []*models.VisibilityException,
	ownerCommunityUID string,
) VisibilityClassification {
	others := s.otherCommunities(managed, ownerCommunityUID)

	switch {
	case len(exceptions) == 0:
		return VisibilityOnlyHide
	case len(exceptions) == len(others):
		return VisibilityOnlyShow
	default:
		return VisibilityBoth
	}
}

// ResolveToggleTargets computes the candidate communities for a hide or show
// toggle.
//
// For a hide, candidates are the managed communities that are neither the
// owner nor already excepted: an occurrence cannot be hidden for a community
// it is already hidden from, nor for the class's own community.
//
// For a show, candidates are exactly the communities in the exception set:
// visibility can only be restored where it was taken away.
func (s *VisibilityService) ResolveToggleTargets(
	action VisibilityAction,
	managed []models.Community,
	exceptions []*models.VisibilityException,
	ownerCommunityUID string,
) []models.CommunityRef {
	switch action {
	case ActionHide:
		excepted := make(map[string]bool, len(exceptions))
		for _, e := range exceptions {
			excepted[e.CommunityUID] = true
		}
		targets := []models.CommunityRef{}
		for _, c := range s.otherCommunities(managed, ownerCommunityUID) {
			if !excepted[c.UID] {
				targets = append(targets, models.CommunityRef{UID: c.UID, Name: c.Name})
			}
		}
		return targets
	case ActionShow:
		targets := make([]models.CommunityRef, 0, len(exceptions))
		for _, e := range exceptions {
			targets = append(targets, e.Ref())
		}
		return targets
	}
	return []models.CommunityRef{}
}

// BuildToggleRequest assembles the visibility toggle mutation for the chosen
// target communities. When exactly one candidate exists the choice is
// ambiguity-free and the selection may be empty; the single candidate is
// applied directly.
func (s *VisibilityService) BuildToggleRequest(
	classUID string,
	date time.Time,
	action VisibilityAction,
	candidates []models.CommunityRef,
	selected []string,
) (*models.VisibilityToggleRequest, error) {
	if len(selected) == 0 {
		if len(candidates) != 1 {
			return nil, domain.NewValidationError("a community selection is required")
		}
		selected = []string{candidates[0].UID}
	}

	candidateSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[c.UID] = true
	}
	for _, uid := range selected {
		if !candidateSet[uid] {
			return nil, domain.NewValidationError("community is not a valid toggle target")
		}
	}

	req := &models.VisibilityToggleRequest{
		ClassUID:      classUID,
		Date:          date,
		CommunityUIDs: selected,
		Hide:          action == ActionHide,
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError("invalid visibility toggle request", err)
	}
	return req, nil
}

// otherCommunities returns the managed communities minus the class's owner.
func (s *VisibilityService) otherCommunities(managed []models.Community, ownerCommunityUID string) []models.Community {
	others := make([]models.Community, 0, len(managed))
	for _, c := range managed {
		if c.UID != ownerCommunityUID {
			others = append(others, c)
		}
	}
	return others
}
