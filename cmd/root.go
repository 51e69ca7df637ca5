package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vibecop",
	Short: "Agrega findings de análise estática e sincroniza com o issue tracker",
	Long: `vibecop roda uma frota de ferramentas de análise estática (ruff, mypy,
bandit, vulture, pip-audit, pmd, spotbugs, gitleaks), normaliza a saída em
findings canônicos com identidade estável entre runs e mantém as issues do
GitHub em sincronia com o último scan.`,
}

var debugMode bool

// Execute registra os subcomandos e executa a raiz.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Habilita logs em nível debug")
}
