package adapters

import (
	"encoding/json"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `ruff check --output-format json`
type ruffJSON []struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	EndLocation struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"end_location"`
	Fix *struct {
		Applicability string `json:"applicability"` // "safe" | "unsafe" | "display"
		Message       string `json:"message"`
	} `json:"fix"`
	URL string `json:"url"`
}

func ParseRuffBytes(b []byte) ([]model.Finding, error) {
	var doc ruffJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	out := make([]model.Finding, 0, len(doc))
	for _, r := range doc {
		f := model.Finding{
			Tool:     "ruff",
			RuleID:   r.Code,
			Severity: ruffSeverity(r.Code),
			Title:    r.Message,
			Message:  r.Message,
			Locations: []model.Location{{
				Path:        toSlash(r.Filename),
				StartLine:   safeLine(r.Location.Row),
				StartColumn: r.Location.Column,
				EndLine:     safeLine(r.EndLocation.Row),
				EndColumn:   r.EndLocation.Column,
			}},
		}
		if r.Fix != nil {
			if r.Fix.Applicability == "safe" {
				f.Autofix = model.AutofixSafe
			} else {
				f.Autofix = model.AutofixReview
			}
			f.SuggestedFix = r.Fix.Message
		}
		out = append(out, f)
	}
	return out, nil
}

func ruffSeverity(code string) model.Severity {
	if code == "" {
		return model.SevLow
	}
	switch code[0] {
	case 'F': // pyflakes: bugs prováveis
		return model.SevMedium
	case 'S': // flake8-bandit
		return model.SevHigh
	default: // estilo/convenção
		return model.SevLow
	}
}
