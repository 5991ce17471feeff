package rulesource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRules_FlatRow(t *testing.T) {
	items := []map[string]any{{
		"Country":        "germany",
		"Timezone":       "Europe/Berlin",
		"StartHour":      float64(20),
		"EndHour":        float64(8),
		"WeekendBlocked": true,
	}}

	rules := normalizeRules("germany", items)
	require.Len(t, rules, 1)
	assert.Equal(t, "Europe/Berlin", rules[0].Timezone)
	assert.Equal(t, 20, rules[0].StartHour)
	assert.Equal(t, 8, rules[0].EndHour)
	assert.True(t, rules[0].WeekendBlocked)
}

func TestNormalizeRules_NestedValuesAndCasing(t *testing.T) {
	items := []map[string]any{{
		"keys": map[string]any{"country": "Germany"},
		"values": map[string]any{
			"timezone":       "Europe/Berlin",
			"starthour":      "20",
			"ENDHOUR":        "8",
			"weekendBlocked": "true",
		},
	}}

	rules := normalizeRules("germany", items)
	require.Len(t, rules, 1)
	assert.Equal(t, "Germany", rules[0].Country)
	assert.Equal(t, "Europe/Berlin", rules[0].Timezone)
	assert.Equal(t, 20, rules[0].StartHour)
	assert.Equal(t, 8, rules[0].EndHour)
	assert.True(t, rules[0].WeekendBlocked)
}

func TestNormalizeRules_DropsOutOfRangeHours(t *testing.T) {
	items := []map[string]any{
		{"Timezone": "Europe/Berlin", "StartHour": float64(25), "EndHour": float64(8)},
		{"Timezone": "Europe/Berlin", "StartHour": float64(9), "EndHour": float64(17)},
		{"Timezone": "Europe/Berlin", "StartHour": float64(9)}, // half a window
	}

	rules := normalizeRules("germany", items)
	require.Len(t, rules, 1)
	assert.Equal(t, 9, rules[0].StartHour)
	assert.Equal(t, 17, rules[0].EndHour)
}

func TestNormalizeRules_WeekendOnlyRowRetained(t *testing.T) {
	// A row carrying only a weekend block must survive normalization with a
	// no-op hour window, not be dropped for missing hours.
	items := []map[string]any{{
		"Timezone":       "Europe/Berlin",
		"WeekendBlocked": true,
	}}

	rules := normalizeRules("germany", items)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].WeekendBlocked)
	assert.Equal(t, 0, rules[0].StartHour)
	assert.Equal(t, 0, rules[0].EndHour)
}

func TestNormalizeRules_MissingTimezoneRetained(t *testing.T) {
	// A row without timezone still reaches the evaluator, which treats it as
	// "no decision possible" rather than dropping it here.
	items := []map[string]any{{"StartHour": float64(9), "EndHour": float64(17)}}
	rules := normalizeRules("germany", items)
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Timezone)
	assert.Equal(t, "germany", rules[0].Country)
}

func TestNormalizeHolidays_DateForms(t *testing.T) {
	items := []map[string]any{
		{"Country": "germany", "Date": "2025-10-03", "Label": "Unity Day"},
		{"values": map[string]any{"date": "2025-12-25T00:00:00Z", "label": "Christmas"}},
		{"Date": "not-a-date"},
	}

	holidays := normalizeHolidays("germany", items)
	require.Len(t, holidays, 2)
	assert.Equal(t, "2025-10-03", holidays[0].Date)
	assert.Equal(t, "2025-12-25", holidays[1].Date)
	assert.Equal(t, "germany", holidays[1].Country)
}
