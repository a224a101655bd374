package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextEligiblePitchDate_ThreeRestDays(t *testing.T) {
	// Age 10, 55 official pitches: the 51-65 tier requires 3 rest days, so the
	// player is next eligible 4 calendar days after the game.
	next, ok := NextEligiblePitchDate(DefaultAgeRules(), 10, 55, MustParseDate("2025-05-10"))
	require.True(t, ok)
	assert.Equal(t, "2025-05-14", next.String())
}

func TestNextEligiblePitchDate_ZeroRestDaysStillSkipsADay(t *testing.T) {
	// 1-20 pitches requires no rest days; eligibility resumes the next day.
	next, ok := NextEligiblePitchDate(DefaultAgeRules(), 10, 15, MustParseDate("2025-05-10"))
	require.True(t, ok)
	assert.Equal(t, "2025-05-11", next.String())
}

func TestNextEligiblePitchDate_MonthRollover(t *testing.T) {
	next, ok := NextEligiblePitchDate(DefaultAgeRules(), 12, 70, MustParseDate("2025-06-28"))
	require.True(t, ok)
	assert.Equal(t, "2025-07-03", next.String())
}

func TestNextEligiblePitchDate_NoAgeRule(t *testing.T) {
	_, ok := NextEligiblePitchDate(DefaultAgeRules(), 14, 55, MustParseDate("2025-05-10"))
	assert.False(t, ok)
}

func TestNextEligiblePitchDate_NoTierForZeroCount(t *testing.T) {
	_, ok := NextEligiblePitchDate(DefaultAgeRules(), 10, 0, MustParseDate("2025-05-10"))
	assert.False(t, ok)
}

func TestParseDate_RoundTrips(t *testing.T) {
	d, err := ParseDate("2025-05-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-04", d.String())
}

func TestParseDate_RejectsGarbage(t *testing.T) {
	_, err := ParseDate("05/04/2025")
	assert.Error(t, err)
}

func TestDate_Before(t *testing.T) {
	assert.True(t, MustParseDate("2025-05-12").Before(MustParseDate("2025-05-14")))
	assert.False(t, MustParseDate("2025-05-14").Before(MustParseDate("2025-05-14")))
	assert.True(t, MustParseDate("2024-12-31").Before(MustParseDate("2025-01-01")))
}

func TestDateOf_IgnoresTimeZone(t *testing.T) {
	// 11pm in a UTC-10 zone is already the next day in UTC; the calendar date
	// must stay the local day it was recorded as.
	loc := time.FixedZone("HST", -10*3600)
	stamp := time.Date(2025, time.May, 10, 23, 0, 0, 0, loc)
	assert.Equal(t, "2025-05-10", DateOf(stamp).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParseDate("2025-05-14")
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-05-14"`, string(raw))

	var parsed Date
	require.NoError(t, parsed.UnmarshalJSON(raw))
	assert.Equal(t, d, parsed)
}

func TestFindAgeRule_ContiguousBands(t *testing.T) {
	rules := DefaultAgeRules()
	for age := 6; age <= 12; age++ {
		_, ok := FindAgeRule(rules, age)
		assert.True(t, ok, "age %d should have a rule", age)
	}
	_, ok := FindAgeRule(rules, 5)
	assert.False(t, ok)
	_, ok = FindAgeRule(rules, 13)
	assert.False(t, ok)
}

func TestRequiredRestDays_TierBoundaries(t *testing.T) {
	rule, ok := FindAgeRule(DefaultAgeRules(), 10)
	require.True(t, ok)

	days, ok := rule.RequiredRestDays(20)
	require.True(t, ok)
	assert.Equal(t, 0, days)

	days, ok = rule.RequiredRestDays(21)
	require.True(t, ok)
	assert.Equal(t, 1, days)

	days, ok = rule.RequiredRestDays(66)
	require.True(t, ok)
	assert.Equal(t, 4, days)

	_, ok = rule.RequiredRestDays(76)
	assert.False(t, ok)
}
