// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/internal/domain"
	"github.com/televeda/scheduling-service/internal/domain/models"
)

var managedCommunities = []models.Community{
	{UID: "community-owner", Name: "Owner"},
	{UID: "community-a", Name: "Alpha"},
	{UID: "community-b", Name: "Beta"},
}

func exceptionFor(communityUID, name string) *models.VisibilityException {
	return &models.VisibilityException{
		ClassUID:     "class-1",
		Date:         time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		CommunityUID: communityUID,
		Community:    name,
	}
}

func TestClassifyVisibility(t *testing.T) {
	svc := NewVisibilityService()

	tests := []struct {
		name       string
		exceptions []*models.VisibilityException
		want       VisibilityClassification
	}{
		{
			name: "no exceptions means only hide is available",
			want: VisibilityOnlyHide,
		},
		{
			name: "every other community excepted means only show",
			exceptions: []*models.VisibilityException{
				exceptionFor("community-a", "Alpha"),
				exceptionFor("community-b", "Beta"),
			},
			want: VisibilityOnlyShow,
		},
		{
			name: "partial exceptions allow both actions",
			exceptions: []*models.VisibilityException{
				exceptionFor("community-a", "Alpha"),
			},
			want: VisibilityBoth,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.ClassifyVisibility(managedCommunities, tc.exceptions, "community-owner")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveToggleTargetsHide(t *testing.T) {
	svc := NewVisibilityService()

	targets := svc.ResolveToggleTargets(
		ActionHide,
		managedCommunities,
		[]*models.VisibilityException{exceptionFor("community-a", "Alpha")},
		"community-owner",
	)

	// The owner and the already-hidden community are not hide candidates.
	require.Len(t, targets, 1)
	assert.Equal(t, "community-b", targets[0].UID)
}

func TestResolveToggleTargetsShow(t *testing.T) {
	svc := NewVisibilityService()

	targets := svc.ResolveToggleTargets(
		ActionShow,
		managedCommunities,
		[]*models.VisibilityException{
			exceptionFor("community-a", "Alpha"),
			exceptionFor("community-b", "Beta"),
		},
		"community-owner",
	)

	require.Len(t, targets, 2)
	assert.Equal(t, "community-a", targets[0].UID)
	assert.Equal(t, "Alpha", targets[0].Name)
	assert.Equal(t, "community-b", targets[1].UID)
}

func TestBuildToggleRequest(t *testing.T) {
	svc := NewVisibilityService()
	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	candidates := []models.CommunityRef{
		{UID: "community-a", Name: "Alpha"},
		{UID: "community-b", Name: "Beta"},
	}

	req, err := svc.BuildToggleRequest("class-1", date, ActionHide, candidates, []string{"community-a"})
	require.NoError(t, err)

	assert.Equal(t, "class-1", req.ClassUID)
	assert.Equal(t, date, req.Date)
	assert.Equal(t, []string{"community-a"}, req.CommunityUIDs)
	assert.True(t, req.Hide)
}

func TestBuildToggleRequestSingleCandidateAutoSelects(t *testing.T) {
	svc := NewVisibilityService()
	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	candidates := []models.CommunityRef{{UID: "community-a", Name: "Alpha"}}

	req, err := svc.BuildToggleRequest("class-1", date, ActionShow, candidates, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"community-a"}, req.CommunityUIDs)
	assert.False(t, req.Hide)
}

func TestBuildToggleRequestErrors(t *testing.T) {
	svc := NewVisibilityService()
	date := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	candidates := []models.CommunityRef{
		{UID: "community-a"},
		{UID: "community-b"},
	}

	// Empty selection is ambiguous with more than one candidate.
	_, err := svc.BuildToggleRequest("class-1", date, ActionHide, candidates, nil)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	// Selecting outside the candidate set is rejected.
	_, err = svc.BuildToggleRequest("class-1", date, ActionHide, candidates, []string{"community-z"})
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}
