package adapters

import (
	"encoding/json"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `pmd check -f json`
type pmdJSON struct {
	Files []struct {
		Filename   string `json:"filename"`
		Violations []struct {
			BeginLine       int    `json:"beginline"`
			EndLine         int    `json:"endline"`
			BeginColumn     int    `json:"begincolumn"`
			EndColumn       int    `json:"endcolumn"`
			Description     string `json:"description"`
			Rule            string `json:"rule"`     // ex: UnusedPrivateField
			Ruleset         string `json:"ruleset"`  // ex: Best Practices
			Priority        int    `json:"priority"` // 1 (pior) .. 5
			ExternalInfoURL string `json:"externalInfoUrl"`
		} `json:"violations"`
	} `json:"files"`
}

func ParsePmdBytes(b []byte) ([]model.Finding, error) {
	var doc pmdJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, file := range doc.Files {
		for _, v := range file.Violations {
			out = append(out, model.Finding{
				Tool:     "pmd",
				RuleID:   v.Rule,
				Severity: pmdSeverity(v.Priority),
				Title:    v.Rule,
				Message:  v.Description,
				Locations: []model.Location{{
					Path:        toSlash(file.Filename),
					StartLine:   safeLine(v.BeginLine),
					StartColumn: v.BeginColumn,
					EndLine:     safeLine(v.EndLine),
					EndColumn:   v.EndColumn,
				}},
			})
		}
	}
	return out, nil
}

func pmdSeverity(priority int) model.Severity {
	switch priority {
	case 1:
		return model.SevHigh
	case 2, 3:
		return model.SevMedium
	default:
		return model.SevLow
	}
}
