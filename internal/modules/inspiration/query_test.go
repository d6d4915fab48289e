package inspiration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = QueryDefaults{MaxResults: 8, RadiusMeters: 5000, LanguageCode: "en-US"}

func floatPtr(v float64) *float64 { return &v }

func TestBuildQueryDefaults(t *testing.T) {
	q, err := BuildQuery(SearchRequest{What: "  Pizza night "}, nil, testDefaults, Capabilities{})
	require.NoError(t, err)

	assert.Equal(t, "Pizza night", q.Text)
	assert.Nil(t, q.Bias)
	assert.Equal(t, 8, q.MaxResults)
	assert.Equal(t, RankRelevance, q.RankPreference)
	assert.Equal(t, "en-US", q.LanguageCode)
	assert.Equal(t, FieldMask(), q.FieldMask)
	assert.Equal(t, Preferences{MaxResults: 8}, q.Deferred)
}

func TestBuildQueryIsIdempotent(t *testing.T) {
	req := SearchRequest{
		What:     "Pizza night",
		Location: milan,
		Preferences: &Preferences{
			MaxResults:  5,
			MinRating:   floatPtr(4),
			PriceLevels: []PriceTier{PriceModerate, PriceExpensive},
			OpenNow:     true,
		},
	}
	bias := ResolveLocation(req.What, req.Location, 5000)
	caps := Capabilities{MinRating: true}

	a, err := BuildQuery(req, bias, testDefaults, caps)
	require.NoError(t, err)
	b, err := BuildQuery(req, bias, testDefaults, caps)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildQueryNativeFilters(t *testing.T) {
	req := SearchRequest{
		What: "sushi",
		Preferences: &Preferences{
			MinRating:   floatPtr(4.5),
			PriceLevels: []PriceTier{PriceInexpensive},
			OpenNow:     true,
		},
	}
	q, err := BuildQuery(req, nil, testDefaults, Capabilities{MinRating: true, PriceLevels: true, OpenNow: true})
	require.NoError(t, err)

	require.NotNil(t, q.MinRating)
	assert.Equal(t, 4.5, *q.MinRating)
	assert.Equal(t, []PriceTier{PriceInexpensive}, q.PriceLevels)
	assert.True(t, q.OpenNow)
	assert.Equal(t, Preferences{MaxResults: 8}, q.Deferred)
}

func TestBuildQueryDefersUnsupportedFilters(t *testing.T) {
	req := SearchRequest{
		What: "sushi",
		Preferences: &Preferences{
			MaxResults:  3,
			MinRating:   floatPtr(4.5),
			PriceLevels: []PriceTier{PriceInexpensive},
			OpenNow:     true,
		},
	}
	q, err := BuildQuery(req, nil, testDefaults, Capabilities{OpenNow: true})
	require.NoError(t, err)

	assert.Nil(t, q.MinRating)
	assert.Empty(t, q.PriceLevels)
	assert.True(t, q.OpenNow)
	assert.Equal(t, 3, q.Deferred.MaxResults)
	require.NotNil(t, q.Deferred.MinRating)
	assert.Equal(t, 4.5, *q.Deferred.MinRating)
	assert.Equal(t, []PriceTier{PriceInexpensive}, q.Deferred.PriceLevels)
	assert.False(t, q.Deferred.OpenNow)
}

func TestBuildQueryAttachesBias(t *testing.T) {
	bias := &LocationBias{Center: *milan, RadiusMeters: 1200}
	q, err := BuildQuery(SearchRequest{What: "Pizza night"}, bias, testDefaults, Capabilities{})
	require.NoError(t, err)
	require.NotNil(t, q.Bias)
	assert.Equal(t, *bias, *q.Bias)
	assert.NotSame(t, bias, q.Bias)
}

func TestBuildQueryRejectsInvalidInput(t *testing.T) {
	_, err := BuildQuery(SearchRequest{What: "   "}, nil, testDefaults, Capabilities{})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = BuildQuery(SearchRequest{What: "pizza", Preferences: &Preferences{MaxResults: -1}}, nil, testDefaults, Capabilities{})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = BuildQuery(SearchRequest{What: "pizza"}, nil, QueryDefaults{}, Capabilities{})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestFieldMaskIsACopy(t *testing.T) {
	mask := FieldMask()
	mask[0] = "photos"
	assert.Equal(t, "id", FieldMask()[0])
	assert.Len(t, FieldMask(), 13)
}
