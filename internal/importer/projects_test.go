package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProjectsJSON_Valid(t *testing.T) {
	in := strings.NewReader(`{
		"projects": [
			{
				"name": " Billing Revamp ",
				"technologies": ["Go", " Postgres ", ""],
				"team": [{"first_name": "Jane", "last_name": "Doe"}],
				"duration_months": 6,
				"end_period": " 2025-03 "
			}
		]
	}`)

	payload, errs, err := ParseProjectsJSON(in)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, payload.Projects, 1)

	p := payload.Projects[0]
	require.Equal(t, "Billing Revamp", p.Name)
	require.Equal(t, []string{"Go", "Postgres"}, p.Technologies)
	require.Len(t, p.Team, 1)
	require.NotNil(t, p.DurationMonths)
	require.Equal(t, 6, *p.DurationMonths)
	require.NotNil(t, p.EndPeriod)
	require.Equal(t, "2025-03", *p.EndPeriod)
}

func TestParseProjectsJSON_BrokenJSONIsHardError(t *testing.T) {
	_, _, err := ParseProjectsJSON(strings.NewReader(`{"projects": [`))
	require.Error(t, err)
}

func TestParseProjectsJSON_DropsInvalidEntries(t *testing.T) {
	in := strings.NewReader(`{
		"projects": [
			{"name": "", "technologies": ["Go"]},
			{
				"name": "Search",
				"team": [
					{"first_name": "Jane", "last_name": ""},
					{"first_name": "Bob", "last_name": "Smith"}
				]
			}
		]
	}`)

	payload, errs, err := ParseProjectsJSON(in)
	require.NoError(t, err)
	require.Len(t, payload.Projects, 1)
	require.Equal(t, "Search", payload.Projects[0].Name)
	require.Len(t, payload.Projects[0].Team, 1)
	require.Equal(t, "Bob", payload.Projects[0].Team[0].FirstName)

	require.Len(t, errs, 2)
	require.Contains(t, errs[0], "project 1: missing name")
	require.Contains(t, errs[1], "project 2: team member 1")
}

func TestParseProjectsJSON_BlankEndPeriodDropped(t *testing.T) {
	in := strings.NewReader(`{"projects": [{"name": "Core", "end_period": "  "}]}`)

	payload, errs, err := ParseProjectsJSON(in)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Nil(t, payload.Projects[0].EndPeriod)
}
