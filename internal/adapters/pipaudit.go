package adapters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// saída de `pip-audit -f json`
type pipAuditJSON struct {
	Dependencies []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Vulns   []struct {
			ID          string   `json:"id"` // GHSA-... | PYSEC-... | CVE-...
			Description string   `json:"description"`
			FixVersions []string `json:"fix_versions"`
			Aliases     []string `json:"aliases"`
		} `json:"vulns"`
	} `json:"dependencies"`
}

// ParsePipAuditBytes mapeia advisories para findings. O manifest auditado
// vira a location âncora (pip-audit não aponta linha).
func ParsePipAuditBytes(b []byte, manifest string) ([]model.Finding, error) {
	var doc pipAuditJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var out []model.Finding
	for _, d := range doc.Dependencies {
		for _, v := range d.Vulns {
			f := model.Finding{
				Tool:     "pip-audit",
				RuleID:   v.ID,
				Severity: model.SevHigh,
				Title:    fmt.Sprintf("%s %s vulnerável (%s)", d.Name, d.Version, v.ID),
				Message:  v.Description,
				Symbol:   d.Name, // identidade estável: o pacote, não a linha do manifest
				Locations: []model.Location{{
					Path:      toSlash(manifest),
					StartLine: 1,
				}},
			}
			if len(v.FixVersions) > 0 {
				f.SuggestedFix = fmt.Sprintf("atualizar %s para %s", d.Name, strings.Join(v.FixVersions, " ou "))
			}
			out = append(out, f)
		}
	}
	return out, nil
}
