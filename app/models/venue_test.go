package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueIssueAPIKey(t *testing.T) {
	venue := &Venue{Name: "Nordkurve Sportsbar", Email: "owner@nordkurve.example", Status: VENUE_STATUS_ACTIVE}

	rawKey, err := venue.IssueAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rawKey, "fst_"))
	assert.True(t, strings.HasPrefix(venue.APIKeyPrefix, "fst_"))
	assert.Len(t, venue.APIKeyHash, 64)
	assert.Equal(t, HashAPIKey(rawKey), venue.APIKeyHash)
	assert.NotNil(t, venue.APIKeyCreatedAt)
	assert.Nil(t, venue.APIKeyRevokedAt)
	assert.Nil(t, venue.APIKeyLastUsedAt)
	assert.True(t, venue.HasActiveAPIKey())
}

func TestVenueIssueAPIKeyRotates(t *testing.T) {
	venue := &Venue{Name: "Nordkurve Sportsbar", Email: "owner@nordkurve.example"}

	first, err := venue.IssueAPIKey()
	require.NoError(t, err)
	firstHash := venue.APIKeyHash

	second, err := venue.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, firstHash, venue.APIKeyHash)
	assert.Equal(t, HashAPIKey(second), venue.APIKeyHash, "only the newest key may authenticate")
}

func TestVenueRevokeAPIKey(t *testing.T) {
	venue := &Venue{Name: "Nordkurve Sportsbar", Email: "owner@nordkurve.example"}
	_, err := venue.IssueAPIKey()
	require.NoError(t, err)

	venue.RevokeAPIKey()

	assert.Empty(t, venue.APIKeyHash)
	assert.Empty(t, venue.APIKeyPrefix)
	assert.NotNil(t, venue.APIKeyRevokedAt)
	assert.Nil(t, venue.APIKeyLastUsedAt)
	assert.False(t, venue.HasActiveAPIKey())
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("fst_abc"), HashAPIKey("  fst_abc\n"))
	assert.NotEqual(t, HashAPIKey("fst_abc"), HashAPIKey("fst_abd"))
}

func TestVenueIsActive(t *testing.T) {
	assert.True(t, (&Venue{Status: VENUE_STATUS_ACTIVE}).IsActive())
	assert.False(t, (&Venue{Status: VENUE_STATUS_INACTIVE}).IsActive())
	assert.False(t, (&Venue{Status: VENUE_STATUS_DISABLED}).IsActive())
}

func TestVenueValidate(t *testing.T) {
	valid := &Venue{Name: "Nordkurve Sportsbar", Email: "owner@nordkurve.example", Status: VENUE_STATUS_ACTIVE}
	assert.NoError(t, valid.Validate())

	missingEmail := &Venue{Name: "Nordkurve Sportsbar", Status: VENUE_STATUS_ACTIVE}
	assert.Error(t, missingEmail.Validate())

	badStatus := &Venue{Name: "Nordkurve Sportsbar", Email: "owner@nordkurve.example", Status: "frozen"}
	assert.Error(t, badStatus.Validate())
}
