// Package merge colapsa findings crus que representam o mesmo problema
// lógico espalhado por várias locations em um único Finding agregado.
package merge

import (
	"strconv"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/classify"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/fingerprint"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

type Strategy string

const (
	// SameLinter agrupa por (tool, ruleId). Default.
	SameLinter Strategy = "same-linter"
	// SameRuleAndTitle agrupa por (tool, ruleId, title) — granularidade fina.
	SameRuleAndTitle Strategy = "same-rule-and-title"
	// None não agrupa; cada ocorrência vira um finding próprio.
	None Strategy = "none"
)

// ParseStrategy valida o valor vindo da config; desconhecido cai no default.
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case SameRuleAndTitle, None:
		return Strategy(s)
	default:
		return SameLinter
	}
}

// Merge agrupa os findings conforme a estratégia. Associativo e idempotente:
// aplicar sobre um resultado já agrupado devolve resultado idêntico.
// Severidade e confiança do grupo são o máximo observado; locations
// preservam ordem de inserção, sem duplicatas de (path, startLine).
func Merge(findings []model.Finding, strategy Strategy) []model.Finding {
	if strategy == None {
		return fingerprintAll(findings)
	}

	byKey := make(map[string]*model.Finding)
	var order []string

	for _, f := range findings {
		key := groupKey(f, strategy)
		g, ok := byKey[key]
		if !ok {
			c := f
			c.Locations = dedupeLocations(f.Locations)
			byKey[key] = &c
			order = append(order, key)
			continue
		}
		g.Severity = model.MaxSeverity(g.Severity, f.Severity)
		g.Confidence = model.MaxConfidence(g.Confidence, f.Confidence)
		g.Locations = appendLocations(g.Locations, f.Locations)
		if g.Evidence == "" {
			g.Evidence = f.Evidence
		}
		if g.SuggestedFix == "" {
			g.SuggestedFix = f.SuggestedFix
		}
	}

	out := make([]model.Finding, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		// Identidade do grupo vem da chave compartilhada, nunca de um membro.
		switch strategy {
		case SameRuleAndTitle:
			g.Fingerprint = fingerprint.ComputeGroup(g.Tool, g.RuleID, g.Title)
		default:
			g.Fingerprint = fingerprint.ComputeGroup(g.Tool, g.RuleID)
		}
		// Labels refletem a severidade final do grupo.
		g.Labels = classify.Labels(*g)
		out = append(out, *g)
	}
	return out
}

func groupKey(f model.Finding, strategy Strategy) string {
	switch strategy {
	case SameRuleAndTitle:
		return f.Tool + "\x1f" + f.RuleID + "\x1f" + f.Title
	default:
		return f.Tool + "\x1f" + f.RuleID
	}
}

func fingerprintAll(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	seen := make(map[string]bool)
	for _, f := range findings {
		f.Locations = dedupeLocations(f.Locations)
		f.Fingerprint = fingerprint.Compute(f)
		if seen[f.Fingerprint] {
			continue
		}
		seen[f.Fingerprint] = true
		out = append(out, f)
	}
	return out
}

func appendLocations(dst, src []model.Location) []model.Location {
	merged := make([]model.Location, len(dst))
	copy(merged, dst)
	for _, l := range src {
		merged = append(merged, l)
	}
	return dedupeLocations(merged)
}

func dedupeLocations(locs []model.Location) []model.Location {
	out := make([]model.Location, 0, len(locs))
	seen := make(map[string]bool)
	for _, l := range locs {
		key := l.Path + "\x1f" + strconv.Itoa(l.StartLine)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
