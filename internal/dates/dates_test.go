package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCalendarDate(t *testing.T) {
	loc := time.FixedZone("west", -11*3600)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"plain day", "2024-02-20", time.Date(2024, 2, 20, 0, 0, 0, 0, loc), true},
		{"rfc3339 suffix discarded", "2024-02-20T00:00:00Z", time.Date(2024, 2, 20, 0, 0, 0, 0, loc), true},
		{"noon suffix discarded", "2024-02-20T12:00:00-05:00", time.Date(2024, 2, 20, 0, 0, 0, 0, loc), true},
		{"empty", "", time.Time{}, false},
		{"not a date", "soon", time.Time{}, false},
		{"two components", "2024-02", time.Time{}, false},
		{"month out of range", "2024-13-01", time.Time{}, false},
		{"day out of range", "2024-02-40", time.Time{}, false},
		{"non-numeric day", "2024-02-xx", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToCalendarDate(tt.input, loc)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

// A date-only string must land on the named calendar day in every zone.
// UTC-based parsing shifts "2024-02-20" to Feb 19 23:xx local in zones
// behind UTC; component-based parsing must not.
func TestToCalendarDateNoZoneDrift(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("utc-11", -11*3600),
		time.FixedZone("utc+13", 13*3600),
		time.FixedZone("utc-0530", -(5*3600 + 1800)),
	}
	for _, loc := range zones {
		got, ok := ToCalendarDate("2024-02-20", loc)
		require.True(t, ok, "zone %s", loc)
		assert.Equal(t, 2024, got.Year(), "zone %s", loc)
		assert.Equal(t, time.February, got.Month(), "zone %s", loc)
		assert.Equal(t, 20, got.Day(), "zone %s", loc)
		assert.Equal(t, loc, got.Location())
	}
}

func TestClassify(t *testing.T) {
	loc := time.FixedZone("west", -7*3600)
	now := time.Date(2024, 2, 20, 16, 30, 0, 0, loc)

	tests := []struct {
		name string
		due  time.Time
		want Classification
	}{
		{"today", time.Date(2024, 2, 20, 0, 0, 0, 0, loc), Classification{"Today", UrgencyCritical}},
		{"tomorrow", time.Date(2024, 2, 21, 0, 0, 0, 0, loc), Classification{"Tomorrow", UrgencySoon}},
		{"later this week", time.Date(2024, 2, 24, 0, 0, 0, 0, loc), Classification{"Feb 24", UrgencyNormal}},
		{"next year", time.Date(2025, 1, 2, 0, 0, 0, 0, loc), Classification{"Jan 2", UrgencyNormal}},
		{"yesterday", time.Date(2024, 2, 19, 0, 0, 0, 0, loc), Classification{"Feb 19", UrgencyOverdue}},
		{"long past", time.Date(2023, 11, 5, 0, 0, 0, 0, loc), Classification{"Nov 5", UrgencyOverdue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.due, now))
		})
	}
}

// Classification is relative to the now that is passed in, never to a
// cached day boundary. The same due date flips from Tomorrow to Today
// when now advances across midnight.
func TestClassifyUsesCurrentNow(t *testing.T) {
	loc := time.UTC
	due := time.Date(2024, 2, 21, 0, 0, 0, 0, loc)

	beforeMidnight := time.Date(2024, 2, 20, 23, 59, 0, 0, loc)
	afterMidnight := time.Date(2024, 2, 21, 0, 1, 0, 0, loc)

	assert.Equal(t, "Tomorrow", Classify(due, beforeMidnight).Label)
	assert.Equal(t, "Today", Classify(due, afterMidnight).Label)
}

func TestToRequestDateIn(t *testing.T) {
	loc := time.FixedZone("east", 13*3600)

	got, ok := ToRequestDateIn("2024-02-20", loc)
	require.True(t, ok)
	assert.Equal(t, "2024-02-20T12:00:00+13:00", got)

	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.Hour())
	assert.Equal(t, 20, parsed.Day())

	_, ok = ToRequestDateIn("not-a-date", loc)
	assert.False(t, ok)
}
