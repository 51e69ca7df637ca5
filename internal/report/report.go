// Package report renderiza o conjunto canônico de findings para consumo
// humano. Renderização pura, de mão única, sobre o modelo.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// JSON serializa o finding set canônico.
func JSON(findings []model.Finding) ([]byte, error) {
	return json.MarshalIndent(findings, "", "  ")
}

// Markdown gera o resumo do scan agrupado por camada.
func Markdown(findings []model.Finding) string {
	var b strings.Builder
	b.WriteString("## Resultado do Scan vibecop\n\n")
	fmt.Fprintf(&b, "Total: %d finding(s)\n\n", len(findings))

	byLayer := map[model.Layer][]model.Finding{}
	for _, f := range findings {
		byLayer[f.Layer] = append(byLayer[f.Layer], f)
	}

	for _, layer := range []model.Layer{model.LayerSecurity, model.LayerArchitecture, model.LayerCode, model.LayerSystem} {
		group := byLayer[layer]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d)\n\n", layer, len(group))
		for _, f := range group {
			p := f.Primary()
			fmt.Fprintf(&b, "- **[%s]** `%s/%s` %s — `%s:%d`",
				f.Severity, f.Tool, f.RuleID, f.Title, p.Path, p.StartLine)
			if n := len(f.Locations); n > 1 {
				fmt.Fprintf(&b, " (+%d ocorrência(s))", n-1)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
