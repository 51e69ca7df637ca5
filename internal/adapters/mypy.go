package adapters

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `mypy --output json`: um objeto JSON por linha
type mypyLine struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Hint     string `json:"hint"`
	Code     string `json:"code"` // ex: "return-value", "arg-type"
	Severity string `json:"severity"`
}

func ParseMypyBytes(b []byte) ([]model.Finding, error) {
	var out []model.Finding

	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var m mypyLine
		if err := json.Unmarshal(line, &m); err != nil {
			// linha fora do formato não derruba o restante
			continue
		}
		ruleID := m.Code
		if ruleID == "" {
			ruleID = "misc"
		}
		out = append(out, model.Finding{
			Tool:         "mypy",
			RuleID:       ruleID,
			Severity:     mypySeverity(m.Severity),
			Title:        m.Message,
			Message:      m.Message,
			SuggestedFix: m.Hint,
			Locations: []model.Location{{
				Path:        toSlash(m.File),
				StartLine:   safeLine(m.Line),
				StartColumn: m.Column,
			}},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func mypySeverity(s string) model.Severity {
	switch s {
	case "error":
		return model.SevMedium
	default: // "note"
		return model.SevLow
	}
}
