// Package fingerprint calcula a identidade estável de um finding, usada
// como chave de junção entre runs. O hash cobre apenas campos canônicos:
// nada de timestamps, contadores de run ou offsets exatos.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// Largura do bucket de linhas: edições pequenas que deslocam a ocorrência
// dentro do mesmo bucket não mudam a identidade.
const lineBucketWidth = 10

// Ferramentas cujas regras disparam várias vezes por arquivo sem contexto
// de símbolo; para elas o bucket de linha entra no escopo do hash.
var lineBucketedTools = map[string]bool{
	"ruff": true,
	"pmd":  true,
}

// Compute retorna o fingerprint de um finding individual (não agrupado):
// hash sobre tool, regra, path primário normalizado e escopo estrutural.
func Compute(f model.Finding) string {
	return digest(f.Tool, f.RuleID, NormalizePath(f.Primary().Path), scope(f))
}

// ComputeGroup retorna o fingerprint de um finding agrupado. Só a identidade
// compartilhada do grupo entra no hash; adicionar ou remover uma ocorrência
// não muda a identidade rastreada.
func ComputeGroup(tool, ruleID string, extra ...string) string {
	parts := append([]string{tool, ruleID}, extra...)
	return digest(parts...)
}

func scope(f model.Finding) string {
	if f.Symbol != "" {
		return "sym:" + f.Symbol
	}
	if lineBucketedTools[f.Tool] {
		return fmt.Sprintf("bkt:%d", f.Primary().StartLine/lineBucketWidth)
	}
	return ""
}

// NormalizePath converte o path para forma relativa com forward slashes.
func NormalizePath(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}

func digest(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])[:16]
}
