package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _now = time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "", "")
	require.NoError(t, err)
	assert.Equal(t, All, f.Kind)

	f, err = ParseFilter("week", "", "")
	require.NoError(t, err)
	assert.Equal(t, Week, f.Kind)

	f, err = ParseFilter("custom", "2025-02-01", "2025-02-10")
	require.NoError(t, err)
	assert.Equal(t, Custom, f.Kind)
	assert.Equal(t, 1, f.From.Day())
	assert.Equal(t, 10, f.To.Day())

	_, err = ParseFilter("yearly", "", "")
	assert.ErrorIs(t, err, InvalidRangeError)

	_, err = ParseFilter("custom", "02/01/2025", "2025-02-10")
	assert.ErrorIs(t, err, InvalidRangeError)

	_, err = ParseFilter("custom", "2025-02-01", "")
	assert.ErrorIs(t, err, InvalidRangeError)
}

func TestValidateCustomRange(t *testing.T) {
	// from after to is rejected before any external call
	f, err := ParseFilter("custom", "2025-02-10", "2025-02-01")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Validate(_now), InvalidRangeError)

	// to in the future is rejected
	f, err = ParseFilter("custom", "2025-02-01", "2025-03-01")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Validate(_now), InvalidRangeError)

	// today is allowed
	f, err = ParseFilter("custom", "2025-02-01", "2025-02-15")
	require.NoError(t, err)
	assert.NoError(t, f.Validate(_now))

	// named windows never carry dates and always validate
	for _, kind := range []FilterKind{All, Day, Week, Month} {
		assert.NoError(t, Filter{Kind: kind}.Validate(_now))
	}
}

func TestContainsWindows(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		ts   time.Time
		want bool
	}{
		{"all matches everything", Filter{Kind: All}, _now.AddDate(-3, 0, 0), true},
		{"day matches same calendar day", Filter{Kind: Day}, time.Date(2025, 2, 15, 0, 30, 0, 0, time.UTC), true},
		{"day excludes yesterday evening", Filter{Kind: Day}, time.Date(2025, 2, 14, 23, 30, 0, 0, time.UTC), false},
		{"week is trailing seven days", Filter{Kind: Week}, _now.AddDate(0, 0, -6), true},
		{"week excludes eight days ago", Filter{Kind: Week}, _now.AddDate(0, 0, -8), false},
		{"month matches month start", Filter{Kind: Month}, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"month excludes january", Filter{Kind: Month}, time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC), false},
		{
			"custom includes endpoint days",
			Filter{Kind: Custom, From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
			time.Date(2025, 2, 10, 18, 0, 0, 0, time.UTC),
			true,
		},
		{
			"custom excludes day after to",
			Filter{Kind: Custom, From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
			time.Date(2025, 2, 11, 0, 0, 1, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Contains(tt.ts, _now))
		})
	}
}

func TestQueryParams(t *testing.T) {
	ft, from, to := Filter{Kind: Week}.QueryParams()
	assert.Equal(t, "week", ft)
	assert.Empty(t, from)
	assert.Empty(t, to)

	f, err := ParseFilter("custom", "2025-02-01", "2025-02-10")
	require.NoError(t, err)
	ft, from, to = f.QueryParams()
	assert.Equal(t, "custom", ft)
	assert.Equal(t, "2025-02-01", from)
	assert.Equal(t, "2025-02-10", to)
}
