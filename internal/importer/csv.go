// Package importer holds the parsing half of the bulk loaders: CSV
// competence sheets, project JSON payloads and free-text CV scanning. It
// never touches the store; the import usecase drives the writes.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CompetenceRecord is one parsed CSV line. Line keeps the 1-based position
// in the source file so write failures can point back at it.
type CompetenceRecord struct {
	Line          int
	LastName      string
	FirstName     string
	Technology    string
	DeclaredLevel int
}

// ParseCompetenceCSV reads `last_name,first_name,technology,declared_level`
// rows. A leading header row is skipped when present. Malformed lines are
// collected as "line N: ..." messages, never aborting the rest.
func ParseCompetenceCSV(r io.Reader) ([]CompetenceRecord, []string) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records := make([]CompetenceRecord, 0)
	errs := make([]string, 0)

	line := 0
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && isCompetenceHeader(row) {
			continue
		}
		if len(row) != 4 {
			errs = append(errs, fmt.Sprintf("line %d: expected 4 fields, got %d", line, len(row)))
			continue
		}

		last := strings.TrimSpace(row[0])
		first := strings.TrimSpace(row[1])
		tech := strings.TrimSpace(row[2])
		if last == "" || first == "" || tech == "" {
			errs = append(errs, fmt.Sprintf("line %d: empty name or technology", line))
			continue
		}

		level, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: declared level %q is not an integer", line, row[3]))
			continue
		}
		if level < 1 || level > 5 {
			errs = append(errs, fmt.Sprintf("line %d: declared level %d out of range [1,5]", line, level))
			continue
		}

		records = append(records, CompetenceRecord{
			Line:          line,
			LastName:      last,
			FirstName:     first,
			Technology:    tech,
			DeclaredLevel: level,
		})
	}

	return records, errs
}

func isCompetenceHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), "last_name")
}
