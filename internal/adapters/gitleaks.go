package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// relatório de `gitleaks detect --report-format json`
type gitleaksJSON []struct {
	Description string  `json:"Description"`
	StartLine   int     `json:"StartLine"`
	EndLine     int     `json:"EndLine"`
	StartColumn int     `json:"StartColumn"`
	File        string  `json:"File"`
	RuleID      string  `json:"RuleID"` // ex: aws-access-key-id
	Entropy     float64 `json:"Entropy"`
	Secret      string  `json:"Secret"`
}

func ParseGitleaksBytes(b []byte) ([]model.Finding, error) {
	var doc gitleaksJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	out := make([]model.Finding, 0, len(doc))
	for _, r := range doc {
		out = append(out, model.Finding{
			Tool:       "gitleaks",
			RuleID:     r.RuleID,
			Severity:   model.SevCritical,
			Confidence: model.ConfHigh,
			Title:      r.Description,
			Message:    fmt.Sprintf("%s detectado em %s", r.Description, r.File),
			// nunca o segredo em si no registro
			Evidence: redact(r.Secret),
			Locations: []model.Location{{
				Path:        toSlash(r.File),
				StartLine:   safeLine(r.StartLine),
				StartColumn: r.StartColumn,
				EndLine:     safeLine(r.EndLine),
			}},
		})
	}
	return out, nil
}

func redact(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}
