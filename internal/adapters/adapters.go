// Package adapters converte o output cru de cada ferramenta para o modelo
// canônico. Cada adapter declara um struct espelho do JSON da ferramenta e
// mapeia campo a campo; as tabelas de mapeamento são configuração, não
// algoritmo.
package adapters

import "path/filepath"

func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func toSlash(p string) string {
	return filepath.ToSlash(p)
}
