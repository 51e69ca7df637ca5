package scanner

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/classify"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// Run executa as ferramentas habilitadas em sequência e devolve os findings
// crus já enriquecidos pelo classificador. Output malformado ou binário
// ausente rende zero findings daquela ferramenta; o run segue com as demais.
func Run(ctx context.Context, log *zap.SugaredLogger, root string, enabled func(configKey string) bool) ([]model.Finding, error) {
	targets, err := DetectTargets(root)
	if err != nil {
		return nil, err
	}

	var all []model.Finding
	for _, tool := range Tools {
		if !enabled(tool.ConfigKey) {
			log.Debugf("ferramenta %s desabilitada na config", tool.Name)
			continue
		}
		if !tool.Detect(targets) {
			log.Debugf("sem alvos para %s", tool.Name)
			continue
		}
		if _, err := exec.LookPath(tool.Binary); err != nil {
			log.Warnf("binário %q não encontrado; pulando %s", tool.Binary, tool.Name)
			continue
		}

		log.Infof("executando %s...", tool.Name)
		raw, err := tool.Run(ctx, root, targets)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warnw("falha ao executar ferramenta", "tool", tool.Name, "erro", err)
			continue
		}

		findings, err := tool.Parse(raw, targets)
		if err != nil {
			// output inparseável: a ferramenta contribui zero findings
			log.Warnw("output inparseável", "tool", tool.Name, "erro", err)
			continue
		}
		for i := range findings {
			relocate(&findings[i], root)
			classify.Enrich(&findings[i])
		}
		log.Infof("%s: %d finding(s)", tool.Name, len(findings))
		all = append(all, findings...)
	}
	return all, nil
}

// relocate normaliza os paths das locations para forma relativa à raiz do
// repositório. Quando o scan parte de um caminho relativo, as ferramentas
// ecoam o prefixo do root; a identidade entre runs exige o mesmo path
// independente do diretório de invocação.
func relocate(f *model.Finding, root string) {
	for i, l := range f.Locations {
		p := l.Path
		if rel, err := filepath.Rel(root, p); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			p = rel
		}
		f.Locations[i].Path = filepath.ToSlash(p)
	}
}
