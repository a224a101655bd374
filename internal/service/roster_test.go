package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster_ValidFile(t *testing.T) {
	csv := "first_name,last_name,league_age\nAva,Ramirez,10\nNoah,Kim,11\n"
	rows, rowErrs, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)
	assert.Equal(t, RosterRow{FirstName: "Ava", LastName: "Ramirez", LeagueAge: 10}, rows[0])
	assert.Equal(t, RosterRow{FirstName: "Noah", LastName: "Kim", LeagueAge: 11}, rows[1])
}

func TestParseRoster_ColumnOrderIrrelevant(t *testing.T) {
	csv := "league_age,last_name,first_name\n9,Okafor,Chidi\n"
	rows, rowErrs, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chidi", rows[0].FirstName)
	assert.Equal(t, 9, rows[0].LeagueAge)
}

func TestParseRoster_MissingColumn(t *testing.T) {
	csv := "first_name,last_name\nAva,Ramirez\n"
	_, _, err := ParseRoster(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "league_age")
}

func TestParseRoster_BadRowsReportedGoodRowsKept(t *testing.T) {
	csv := strings.Join([]string{
		"first_name,last_name,league_age",
		"Ava,Ramirez,10",
		"Noah,Kim,not-a-number",
		",Missing,9",
		"Maya,Singh,25", // out of league age range
		"Leo,Park,8",
	}, "\n")

	rows, rowErrs, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ava", rows[0].FirstName)
	assert.Equal(t, "Leo", rows[1].FirstName)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Equal(t, 4, rowErrs[1].Line)
	assert.Equal(t, 5, rowErrs[2].Line)
}

func TestParseRoster_EmptyBody(t *testing.T) {
	rows, rowErrs, err := ParseRoster(strings.NewReader("first_name,last_name,league_age\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, rowErrs)
}
