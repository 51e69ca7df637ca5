package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Targets resume o que existe no repositório para decidir, por ferramenta,
// se há algo a escanear.
type Targets struct {
	Python      bool
	Java        bool
	JavaClasses string // diretório de .class compilados (spotbugs), vazio = ausente
	Manifest    string // requirements.txt / pyproject.toml, relativo à raiz
}

var skipDirs = map[string]bool{
	".git":          true,
	".vibecop":      true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".pytest_cache": true,
}

// DetectTargets percorre o repositório uma única vez e marca os alvos.
func DetectTargets(root string) (Targets, error) {
	var t Targets

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // entrada ilegível não derruba a detecção
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		switch {
		case strings.HasSuffix(path, ".py"):
			t.Python = true
		case strings.HasSuffix(path, ".java"):
			t.Java = true
		case strings.HasSuffix(path, ".class"):
			if t.JavaClasses == "" {
				t.JavaClasses = filepath.Dir(path)
			}
		case d.Name() == "requirements.txt" || d.Name() == "pyproject.toml":
			if t.Manifest == "" {
				t.Manifest = filepath.ToSlash(rel)
			}
		}
		return nil
	})
	if err != nil {
		return t, err
	}
	return t, nil
}
