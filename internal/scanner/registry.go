// Package scanner declara a frota de ferramentas como uma tabela de
// descritores imutáveis {predicado de detecção, invocação, parser} e
// orquestra a execução. Sem hierarquia de tipos: o orquestrador só itera a
// tabela.
package scanner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/adapters"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// Tool descreve uma ferramenta de análise suportada.
type Tool struct {
	Name      string
	ConfigKey string // chave em .vibecop.yaml (tools.<chave>)
	Binary    string
	Detect    func(t Targets) bool
	Run       func(ctx context.Context, root string, t Targets) ([]byte, error)
	Parse     func(b []byte, t Targets) ([]model.Finding, error)
}

// Tools é a tabela declarativa. Ordem fixa: a ordem de execução e de
// inserção dos findings é determinística.
var Tools = []Tool{
	{
		Name:      "ruff",
		ConfigKey: "ruff",
		Binary:    "ruff",
		Detect:    func(t Targets) bool { return t.Python },
		Run: func(ctx context.Context, root string, _ Targets) ([]byte, error) {
			return runStdout(ctx, "ruff", "check", "--output-format", "json", "--exit-zero", root)
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseRuffBytes(b) },
	},
	{
		Name:      "mypy",
		ConfigKey: "mypy",
		Binary:    "mypy",
		Detect:    func(t Targets) bool { return t.Python },
		Run: func(ctx context.Context, root string, _ Targets) ([]byte, error) {
			return runStdout(ctx, "mypy", "--output", "json", "--no-error-summary", root)
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseMypyBytes(b) },
	},
	{
		Name:      "bandit",
		ConfigKey: "bandit",
		Binary:    "bandit",
		Detect:    func(t Targets) bool { return t.Python },
		Run: func(ctx context.Context, root string, _ Targets) ([]byte, error) {
			return runStdout(ctx, "bandit", "-r", "-q", "-f", "json", root)
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseBanditBytes(b) },
	},
	{
		Name:      "vulture",
		ConfigKey: "vulture",
		Binary:    "vulture",
		Detect:    func(t Targets) bool { return t.Python },
		Run: func(ctx context.Context, root string, _ Targets) ([]byte, error) {
			return runStdout(ctx, "vulture", root)
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseVultureBytes(b) },
	},
	{
		Name:      "pip-audit",
		ConfigKey: "pip_audit",
		Binary:    "pip-audit",
		Detect:    func(t Targets) bool { return t.Manifest != "" },
		Run: func(ctx context.Context, root string, t Targets) ([]byte, error) {
			return runStdout(ctx, "pip-audit", pipAuditArgs(root, t)...)
		},
		Parse: func(b []byte, t Targets) ([]model.Finding, error) {
			return adapters.ParsePipAuditBytes(b, t.Manifest)
		},
	},
	{
		Name:      "pmd",
		ConfigKey: "pmd",
		Binary:    "pmd",
		Detect:    func(t Targets) bool { return t.Java },
		Run: func(ctx context.Context, root string, _ Targets) ([]byte, error) {
			return runStdout(ctx, "pmd", "check", "-d", root,
				"-R", "rulesets/java/quickstart.xml", "-f", "json", "--no-progress")
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParsePmdBytes(b) },
	},
	{
		Name:      "spotbugs",
		ConfigKey: "spotbugs",
		Binary:    "spotbugs",
		Detect:    func(t Targets) bool { return t.JavaClasses != "" },
		Run: func(ctx context.Context, root string, t Targets) ([]byte, error) {
			return runStdout(ctx, "spotbugs", "-textui", "-sarif", t.JavaClasses)
		},
		Parse: func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseSpotbugsBytes(b) },
	},
	{
		Name:      "gitleaks",
		ConfigKey: "gitleaks",
		Binary:    "gitleaks",
		Detect:    func(_ Targets) bool { return true },
		Run:       runGitleaks,
		Parse:     func(b []byte, _ Targets) ([]model.Finding, error) { return adapters.ParseGitleaksBytes(b) },
	},
}

// O manifest em Targets é relativo à raiz do scan, mas o subprocesso roda
// no CWD do processo: o caminho precisa ser re-ancorado no root.
func pipAuditArgs(root string, t Targets) []string {
	return []string{"-r", filepath.Join(root, t.Manifest), "-f", "json"}
}

// runStdout executa o binário e captura stdout. Linters saem com código != 0
// quando encontram problemas; se houve output parseável o exit code é
// ignorado.
func runStdout(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if err != nil {
		if _, isExit := err.(*exec.ExitError); isExit && len(out) > 0 {
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

// gitleaks não escreve o relatório em stdout; vai por arquivo temporário,
// lido independente do exit code (1 = vazamentos encontrados).
func runGitleaks(ctx context.Context, root string, _ Targets) ([]byte, error) {
	report, err := os.CreateTemp("", "gitleaks-report-*.json")
	if err != nil {
		return nil, err
	}
	reportPath := report.Name()
	report.Close()
	defer os.Remove(reportPath)

	cmd := exec.CommandContext(ctx, "gitleaks", "detect",
		"--source", root, "--no-banner",
		"--report-format", "json", "--report-path", reportPath)
	runErr := cmd.Run()

	b, readErr := os.ReadFile(reportPath)
	if readErr != nil || len(b) == 0 {
		if runErr != nil {
			return nil, runErr
		}
		return []byte("[]"), nil
	}
	return b, nil
}
