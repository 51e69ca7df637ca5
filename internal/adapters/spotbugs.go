package adapters

import (
	"encoding/json"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `spotbugs -sarif` (subconjunto do SARIF 2.1.0 que consumimos)
type spotbugsSarif struct {
	Runs []struct {
		Results []struct {
			RuleID  string `json:"ruleId"` // ex: EI_EXPOSE_REP, NP_ALWAYS_NULL
			Level   string `json:"level"`  // error | warning | note
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine int `json:"startLine"`
					} `json:"region"`
				} `json:"physicalLocation"`
				LogicalLocations []struct {
					Name string `json:"name"` // método/classe
				} `json:"logicalLocations"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func ParseSpotbugsBytes(b []byte) ([]model.Finding, error) {
	var doc spotbugsSarif
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, run := range doc.Runs {
		for _, r := range run.Results {
			f := model.Finding{
				Tool:     "spotbugs",
				RuleID:   r.RuleID,
				Severity: spotbugsSeverity(r.Level),
				Title:    r.RuleID,
				Message:  r.Message.Text,
			}
			for _, loc := range r.Locations {
				f.Locations = append(f.Locations, model.Location{
					Path:      toSlash(loc.PhysicalLocation.ArtifactLocation.URI),
					StartLine: safeLine(loc.PhysicalLocation.Region.StartLine),
				})
				if f.Symbol == "" && len(loc.LogicalLocations) > 0 {
					f.Symbol = loc.LogicalLocations[0].Name
				}
			}
			if len(f.Locations) == 0 {
				continue
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func spotbugsSeverity(level string) model.Severity {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return model.SevHigh
	case "warning":
		return model.SevMedium
	default:
		return model.SevLow
	}
}
