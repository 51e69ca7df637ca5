package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectTargets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.py", "x = 1\n")
	writeFile(t, root, "src/Main.java", "class Main {}\n")
	writeFile(t, root, "requirements.txt", "requests==2.19.0\n")

	targets, err := DetectTargets(root)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !targets.Python {
		t.Error("esperado alvo Python detectado")
	}
	if !targets.Java {
		t.Error("esperado alvo Java detectado")
	}
	if targets.Manifest != "requirements.txt" {
		t.Errorf("esperado requirements.txt, obtido %q", targets.Manifest)
	}
	if targets.JavaClasses != "" {
		t.Errorf("sem .class compilado, esperado vazio, obtido %q", targets.JavaClasses)
	}
}

func TestDetectTargetsIgnoraDiretoriosDeCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".venv/lib/site.py", "x = 1\n")
	writeFile(t, root, "node_modules/pkg/index.py", "x = 1\n")

	targets, err := DetectTargets(root)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if targets.Python {
		t.Error("arquivos em diretórios ignorados não deveriam contar como alvo")
	}
}

func TestToolsTabelaCompleta(t *testing.T) {
	// cada descritor precisa estar inteiro: a orquestração só itera a tabela
	seen := map[string]bool{}
	for _, tool := range Tools {
		if tool.Name == "" || tool.ConfigKey == "" || tool.Binary == "" {
			t.Errorf("descritor incompleto: %+v", tool)
		}
		if tool.Detect == nil || tool.Run == nil || tool.Parse == nil {
			t.Errorf("descritor %s sem predicado/execução/parser", tool.Name)
		}
		if seen[tool.Name] {
			t.Errorf("ferramenta duplicada na tabela: %s", tool.Name)
		}
		seen[tool.Name] = true
	}
	for _, name := range []string{"ruff", "mypy", "bandit", "vulture", "pip-audit", "pmd", "spotbugs", "gitleaks"} {
		if !seen[name] {
			t.Errorf("ferramenta ausente da tabela: %s", name)
		}
	}
}
