package fingerprint

import (
	"testing"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

func finding(tool, rule, path string, line int, symbol string) model.Finding {
	return model.Finding{
		Tool:   tool,
		RuleID: rule,
		Symbol: symbol,
		Locations: []model.Location{
			{Path: path, StartLine: line},
		},
	}
}

func TestComputeDeterministico(t *testing.T) {
	f := finding("ruff", "E501", "src/app.py", 42, "")
	a := Compute(f)
	b := Compute(f)
	if a != b {
		t.Errorf("esperado fingerprint estável, obtido %q e %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("esperado digest de 16 chars, obtido %d", len(a))
	}
}

func TestComputeIgnoraDeslocamentoNoMesmoBucket(t *testing.T) {
	// edição não relacionada desloca a ocorrência em poucas linhas
	a := Compute(finding("ruff", "E501", "src/app.py", 41, ""))
	b := Compute(finding("ruff", "E501", "src/app.py", 43, ""))
	if a != b {
		t.Errorf("esperado mesma identidade dentro do bucket, obtido %q e %q", a, b)
	}
}

func TestComputeDistingueProblemasDiferentes(t *testing.T) {
	base := finding("ruff", "E501", "src/app.py", 42, "")
	variants := []model.Finding{
		finding("ruff", "F401", "src/app.py", 42, ""),
		finding("mypy", "E501", "src/app.py", 42, ""),
		finding("ruff", "E501", "src/other.py", 42, ""),
	}
	fp := Compute(base)
	for _, v := range variants {
		if Compute(v) == fp {
			t.Errorf("colisão entre findings distintos: %+v", v)
		}
	}
}

func TestComputeUsaSimboloQuandoPresente(t *testing.T) {
	// com símbolo, a linha deixa de importar
	a := Compute(finding("vulture", "unused-function", "src/app.py", 10, "helper"))
	b := Compute(finding("vulture", "unused-function", "src/app.py", 300, "helper"))
	if a != b {
		t.Errorf("esperado identidade ancorada no símbolo, obtido %q e %q", a, b)
	}

	c := Compute(finding("vulture", "unused-function", "src/app.py", 10, "outra"))
	if a == c {
		t.Error("símbolos diferentes deveriam produzir identidades diferentes")
	}
}

func TestComputeGroupIndependeDeLocations(t *testing.T) {
	a := ComputeGroup("ruff", "E501")
	b := ComputeGroup("ruff", "E501")
	if a != b {
		t.Errorf("esperado %q, obtido %q", a, b)
	}
	if a == ComputeGroup("ruff", "F401") {
		t.Error("regras diferentes deveriam produzir grupos diferentes")
	}
	if ComputeGroup("ruff", "E501", "titulo") == a {
		t.Error("extra de estratégia deveria mudar a identidade do grupo")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"./src/app.py", "src/app.py"},
		{"../src/app.py", "src/app.py"},
		{"  src/app.py ", "src/app.py"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.expected {
			t.Errorf("NormalizePath(%q): esperado %q, obtido %q", tt.in, tt.expected, got)
		}
	}
}
