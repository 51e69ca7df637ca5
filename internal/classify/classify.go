package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// Ferramentas dedicadas a segurança: tudo que emitem é security, salvo
// diagnósticos claramente não-security (checados por substring no rule id).
var securityTools = map[string]bool{
	"bandit":    true,
	"gitleaks":  true,
	"pip-audit": true,
}

// Substrings de rule id que indicam diagnóstico não-security mesmo vindo
// de ferramenta de segurança (ex: avisos de estilo/configuração).
var nonSecurityHints = []string{
	"style",
	"format",
	"naming",
	"convention",
	"deprecated",
}

// Identificadores de advisory: sempre security, independente da ferramenta.
var advisoryRe = regexp.MustCompile(`(?i)^(GHSA-|CVE-\d{4}-|CWE-\d+|PYSEC-|OSV-|KICS[-_]|AVD-|CKV)`)

// Fragmentos de palavra-chave que classificam a regra como security.
var securityKeywords = []string{
	"injection",
	"inject",
	"secret",
	"crypto",
	"cipher",
	"auth",
	"eval",
	"exec",
	"hardcoded",
	"hard-coded",
	"pollution",
	"xss",
	"csrf",
	"ssrf",
	"traversal",
	"pickle",
	"deserial",
	"unsafe",
	"password",
	"token",
}

// Ferramentas de dependência/código morto: architecture.
var architectureTools = map[string]bool{
	"vulture": true,
}

var architectureKeywords = []string{
	"import",
	"dependency",
	"dependenc",
	"cycle",
	"cyclic",
	"circular",
	"unused-module",
	"dead-code",
}

// Ferramentas de type-checking: code.
var typecheckTools = map[string]bool{
	"mypy": true,
}

// Layer mapeia (tool, ruleId) para a camada do finding. Função pura e
// total: combinação desconhecida cai no default "code".
func Layer(tool, ruleID string) model.Layer {
	rule := strings.ToLower(ruleID)

	if securityTools[tool] {
		for _, h := range nonSecurityHints {
			if strings.Contains(rule, h) {
				return model.LayerCode
			}
		}
		return model.LayerSecurity
	}

	if advisoryRe.MatchString(ruleID) {
		return model.LayerSecurity
	}

	for _, kw := range securityKeywords {
		if strings.Contains(rule, kw) {
			return model.LayerSecurity
		}
	}

	if architectureTools[tool] {
		return model.LayerArchitecture
	}
	for _, kw := range architectureKeywords {
		if strings.Contains(rule, kw) {
			return model.LayerArchitecture
		}
	}

	if typecheckTools[tool] {
		return model.LayerCode
	}

	return model.LayerCode
}

// defaults por ferramenta quando o adapter não trouxe o valor do output cru.
type toolDefaults struct {
	severity   model.Severity
	confidence model.Confidence
	autofix    model.Autofix
}

var defaultsByTool = map[string]toolDefaults{
	"ruff":      {model.SevLow, model.ConfHigh, model.AutofixNone},
	"mypy":      {model.SevMedium, model.ConfHigh, model.AutofixNone},
	"bandit":    {model.SevMedium, model.ConfMedium, model.AutofixNone},
	"vulture":   {model.SevLow, model.ConfMedium, model.AutofixReview},
	"pip-audit": {model.SevHigh, model.ConfHigh, model.AutofixSafe},
	"pmd":       {model.SevMedium, model.ConfMedium, model.AutofixNone},
	"spotbugs":  {model.SevMedium, model.ConfMedium, model.AutofixNone},
	"gitleaks":  {model.SevCritical, model.ConfHigh, model.AutofixReview},
}

var fallbackDefaults = toolDefaults{model.SevLow, model.ConfLow, model.AutofixNone}

// effortFor deriva o esforço estimado da camada + severidade.
func effortFor(layer model.Layer, sev model.Severity) model.Effort {
	switch {
	case layer == model.LayerArchitecture:
		return model.EffortL
	case layer == model.LayerSecurity && model.SeverityRank(sev) >= model.SeverityRank(model.SevHigh):
		return model.EffortM
	case model.SeverityRank(sev) >= model.SeverityRank(model.SevHigh):
		return model.EffortM
	default:
		return model.EffortS
	}
}

// Enrich preenche layer, defaults de severidade/confiança/autofix, esforço e
// labels de um finding vindo dos adapters. Determinístico, sem side effects.
func Enrich(f *model.Finding) {
	f.Layer = Layer(f.Tool, f.RuleID)

	d, ok := defaultsByTool[f.Tool]
	if !ok {
		d = fallbackDefaults
	}
	if f.Severity == "" {
		f.Severity = d.severity
	}
	if f.Confidence == "" {
		f.Confidence = d.confidence
	}
	if f.Autofix == "" {
		f.Autofix = d.autofix
	}

	// Piso de severidade para security: nunca abaixo de medium.
	if f.Layer == model.LayerSecurity {
		f.Severity = model.MaxSeverity(f.Severity, model.SevMedium)
	}

	f.Effort = effortFor(f.Layer, f.Severity)
	f.Labels = Labels(*f)
}

// Labels deriva as tags de classificação do finding. Ordem fixa.
func Labels(f model.Finding) []string {
	return []string{
		"vibecop",
		fmt.Sprintf("layer:%s", f.Layer),
		fmt.Sprintf("severity:%s", f.Severity),
		fmt.Sprintf("tool:%s", f.Tool),
	}
}
