package adapters

import (
	"encoding/json"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `bandit -f json`
type banditJSON struct {
	Results []struct {
		Filename        string `json:"filename"`
		IssueSeverity   string `json:"issue_severity"`   // LOW|MEDIUM|HIGH
		IssueConfidence string `json:"issue_confidence"` // LOW|MEDIUM|HIGH
		IssueText       string `json:"issue_text"`
		TestID          string `json:"test_id"`   // ex: B602
		TestName        string `json:"test_name"` // ex: subprocess_popen_with_shell_equals_true
		LineNumber      int    `json:"line_number"`
		ColOffset       int    `json:"col_offset"`
		Code            string `json:"code"`
		MoreInfo        string `json:"more_info"`
	} `json:"results"`
}

func ParseBanditBytes(b []byte) ([]model.Finding, error) {
	var doc banditJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	out := make([]model.Finding, 0, len(doc.Results))
	for _, r := range doc.Results {
		out = append(out, model.Finding{
			Tool:       "bandit",
			RuleID:     r.TestID,
			Severity:   banditSeverity(r.IssueSeverity),
			Confidence: banditConfidence(r.IssueConfidence),
			Title:      r.TestName,
			Message:    r.IssueText,
			Evidence:   r.Code,
			Locations: []model.Location{{
				Path:        toSlash(r.Filename),
				StartLine:   safeLine(r.LineNumber),
				StartColumn: r.ColOffset,
			}},
		})
	}
	return out, nil
}

func banditSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return model.SevHigh
	case "MEDIUM":
		return model.SevMedium
	default:
		return model.SevLow
	}
}

func banditConfidence(s string) model.Confidence {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return model.ConfHigh
	case "MEDIUM":
		return model.ConfMedium
	default:
		return model.ConfLow
	}
}
