package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompetenceCSV_SkipsHeader(t *testing.T) {
	in := strings.NewReader("last_name,first_name,technology,declared_level\nDoe,Jane,Go,4\n")

	records, errs := ParseCompetenceCSV(in)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	require.Equal(t, CompetenceRecord{Line: 2, LastName: "Doe", FirstName: "Jane", Technology: "Go", DeclaredLevel: 4}, records[0])
}

func TestParseCompetenceCSV_NoHeader(t *testing.T) {
	in := strings.NewReader("Doe,Jane,Go,4\nSmith,Bob,Postgres,2\n")

	records, errs := ParseCompetenceCSV(in)
	require.Empty(t, errs)
	require.Len(t, records, 2)
	require.Equal(t, 1, records[0].Line)
	require.Equal(t, "Postgres", records[1].Technology)
}

func TestParseCompetenceCSV_CollectsLineErrors(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"last_name,first_name,technology,declared_level",
		"Doe,Jane,Go,4",
		"Smith,Bob,Postgres",
		",Bob,Postgres,3",
		"Lee,Ann,Redis,abc",
		"Lee,Ann,Redis,9",
		"Park,Min,Kafka,1",
	}, "\n"))

	records, errs := ParseCompetenceCSV(in)
	require.Len(t, records, 2)
	require.Equal(t, "Go", records[0].Technology)
	require.Equal(t, "Kafka", records[1].Technology)

	require.Len(t, errs, 4)
	require.Contains(t, errs[0], "line 3")
	require.Contains(t, errs[0], "expected 4 fields")
	require.Contains(t, errs[1], "line 4")
	require.Contains(t, errs[1], "empty name")
	require.Contains(t, errs[2], "line 5")
	require.Contains(t, errs[2], "not an integer")
	require.Contains(t, errs[3], "line 6")
	require.Contains(t, errs[3], "out of range")
}

func TestParseCompetenceCSV_TrimsWhitespace(t *testing.T) {
	in := strings.NewReader(" Doe , Jane , Go , 3 \n")

	records, errs := ParseCompetenceCSV(in)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	require.Equal(t, "Doe", records[0].LastName)
	require.Equal(t, 3, records[0].DeclaredLevel)
}

func TestParseCompetenceCSV_Empty(t *testing.T) {
	records, errs := ParseCompetenceCSV(strings.NewReader(""))
	require.Empty(t, records)
	require.Empty(t, errs)
}
