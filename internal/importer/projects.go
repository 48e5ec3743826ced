package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type TeamMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProjectRecord struct {
	Name           string       `json:"name"`
	Technologies   []string     `json:"technologies"`
	Team           []TeamMember `json:"team"`
	DurationMonths *int         `json:"duration_months"`
	EndPeriod      *string      `json:"end_period"`
}

type ProjectsPayload struct {
	Projects []ProjectRecord `json:"projects"`
}

// ParseProjectsJSON decodes a bulk project payload and normalizes its
// strings. Structurally broken JSON is a hard error; individually invalid
// projects are dropped with a positional message.
func ParseProjectsJSON(r io.Reader) (ProjectsPayload, []string, error) {
	var payload ProjectsPayload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return ProjectsPayload{}, nil, fmt.Errorf("decode payload: %w", err)
	}

	errs := make([]string, 0)
	kept := make([]ProjectRecord, 0, len(payload.Projects))
	for i, p := range payload.Projects {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("project %d: missing name", i+1))
			continue
		}

		techs := make([]string, 0, len(p.Technologies))
		for _, t := range p.Technologies {
			if t = strings.TrimSpace(t); t != "" {
				techs = append(techs, t)
			}
		}
		p.Technologies = techs

		team := make([]TeamMember, 0, len(p.Team))
		for j, m := range p.Team {
			m.FirstName = strings.TrimSpace(m.FirstName)
			m.LastName = strings.TrimSpace(m.LastName)
			if m.FirstName == "" || m.LastName == "" {
				errs = append(errs, fmt.Sprintf("project %d: team member %d missing a name", i+1, j+1))
				continue
			}
			team = append(team, m)
		}
		p.Team = team

		if p.EndPeriod != nil {
			if v := strings.TrimSpace(*p.EndPeriod); v != "" {
				p.EndPeriod = &v
			} else {
				p.EndPeriod = nil
			}
		}

		kept = append(kept, p)
	}
	payload.Projects = kept
	return payload, errs, nil
}
