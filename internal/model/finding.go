package model

type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevLow      Severity = "low"
)

type Confidence string

const (
	ConfHigh   Confidence = "high"
	ConfMedium Confidence = "medium"
	ConfLow    Confidence = "low"
)

type Layer string

const (
	LayerCode         Layer = "code"
	LayerArchitecture Layer = "architecture"
	LayerSecurity     Layer = "security"
	LayerSystem       Layer = "system"
)

type Effort string

const (
	EffortS Effort = "S"
	EffortM Effort = "M"
	EffortL Effort = "L"
)

type Autofix string

const (
	AutofixNone   Autofix = "none"
	AutofixSafe   Autofix = "safe"
	AutofixReview Autofix = "requires_review"
)

// Location é uma ocorrência do finding no repositório (path relativo, slashes).
type Location struct {
	Path        string `json:"path"`
	StartLine   int    `json:"startLine"` // 1-based
	StartColumn int    `json:"startColumn,omitempty"`
	EndLine     int    `json:"endLine,omitempty"`
	EndColumn   int    `json:"endColumn,omitempty"`
}

// Finding é o registro canônico de um problema detectado, independente da
// ferramenta de origem. Produzido do zero a cada run.
type Finding struct {
	Fingerprint  string     `json:"fingerprint"`
	Tool         string     `json:"tool"`   // "ruff" | "mypy" | "bandit" | "vulture" | "pip-audit" | "pmd" | "spotbugs" | "gitleaks"
	RuleID       string     `json:"ruleId"` // id da regra no scanner de origem
	Layer        Layer      `json:"layer"`
	Severity     Severity   `json:"severity"`
	Confidence   Confidence `json:"confidence"`
	Effort       Effort     `json:"effort"`
	Autofix      Autofix    `json:"autofix"`
	Locations    []Location `json:"locations"` // pelo menos uma
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Labels       []string   `json:"labels"`
	Evidence     string     `json:"evidence,omitempty"`
	SuggestedFix string     `json:"suggestedFix,omitempty"`

	// Symbol é o contexto estrutural (função/classe) usado no fingerprint
	// quando a ferramenta fornece.
	Symbol string `json:"symbol,omitempty"`
}

// Primary retorna a primeira location (a âncora do finding).
func (f Finding) Primary() Location {
	if len(f.Locations) == 0 {
		return Location{}
	}
	return f.Locations[0]
}

var severityRank = map[Severity]int{
	SevLow:      1,
	SevMedium:   2,
	SevHigh:     3,
	SevCritical: 4,
}

var confidenceRank = map[Confidence]int{
	ConfLow:    1,
	ConfMedium: 2,
	ConfHigh:   3,
}

// SeverityRank retorna o peso numérico da severidade (0 se desconhecida).
func SeverityRank(s Severity) int { return severityRank[s] }

// ConfidenceRank retorna o peso numérico da confiança (0 se desconhecida).
func ConfidenceRank(c Confidence) int { return confidenceRank[c] }

// MaxSeverity retorna a mais alta entre duas severidades.
func MaxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// MaxConfidence retorna a mais alta entre duas confianças.
func MaxConfidence(a, b Confidence) Confidence {
	if confidenceRank[b] > confidenceRank[a] {
		return b
	}
	return a
}
