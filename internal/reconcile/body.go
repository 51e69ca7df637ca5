package reconcile

import (
	"fmt"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// IssueTitle monta o título do registro no tracker.
func IssueTitle(f model.Finding) string {
	return fmt.Sprintf("[%s/%s] %s", f.Tool, f.RuleID, f.Title)
}

// IssueBody renderiza o corpo do registro: detalhe, ocorrências e o
// marcador recuperável com fingerprint + run.
func IssueBody(f model.Finding, run, misses int) string {
	var b strings.Builder

	b.WriteString(f.Message)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "**Camada:** %s | **Severidade:** %s | **Confiança:** %s | **Esforço:** %s\n\n",
		f.Layer, f.Severity, f.Confidence, f.Effort)

	fmt.Fprintf(&b, "**Ocorrências (%d):**\n", len(f.Locations))
	for _, l := range f.Locations {
		if l.StartLine > 0 {
			fmt.Fprintf(&b, "- `%s:%d`\n", l.Path, l.StartLine)
		} else {
			fmt.Fprintf(&b, "- `%s`\n", l.Path)
		}
	}

	if f.Evidence != "" {
		b.WriteString("\n```\n")
		b.WriteString(strings.TrimRight(f.Evidence, "\n"))
		b.WriteString("\n```\n")
	}
	if f.SuggestedFix != "" {
		fmt.Fprintf(&b, "\n**Correção sugerida:** %s\n", f.SuggestedFix)
	}

	b.WriteString("\n")
	b.WriteString(Marker(f.Fingerprint, run, misses))
	b.WriteString("\n")
	return b.String()
}
