package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/config"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/logging"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/merge"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/report"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/sarif"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/scanner"
)

var (
	configPath    string
	outputFormat  string
	mergeStrategy string
)

const version = "0.3.0"

var scanCmd = &cobra.Command{
	Use:   "scan [caminho]",
	Short: "Roda as ferramentas de análise e emite o finding set canônico",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(debugMode)
		if err != nil {
			fmt.Println("Erro ao iniciar logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()

		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Errorw("Erro ao carregar config", "erro", err)
			os.Exit(1)
		}
		if mergeStrategy != "" {
			cfg.MergeStrategy = mergeStrategy
		}

		root := args[0]
		logger.Infof("Escaneando %s", root)

		findings, err := scanner.Run(cmd.Context(), logger, root, cfg.ToolEnabled)
		if err != nil {
			logger.Errorw("Erro ao escanear", "erro", err)
			os.Exit(1)
		}

		merged := merge.Merge(findings, merge.ParseStrategy(cfg.MergeStrategy))
		sarif.SortFindings(merged)

		switch strings.ToLower(outputFormat) {
		case "json":
			encoded, err := report.JSON(merged)
			if err != nil {
				logger.Errorw("Erro ao gerar JSON", "erro", err)
				os.Exit(1)
			}
			fmt.Println(string(encoded))

		case "sarif":
			path, err := sarif.Export(merged, ".vibecop", "scan", "vibecop", version)
			if err != nil {
				logger.Errorw("Erro ao gerar SARIF", "erro", err)
				os.Exit(1)
			}
			logger.Infow("SARIF gerado", "arquivo", path)

		default: // markdown
			fmt.Println(report.Markdown(merged))
		}
	},
}

func init() {
	scanCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Caminho do arquivo de config")
	scanCmd.Flags().StringVarP(&outputFormat, "output", "o", "markdown", "Formato da saída (json, markdown, sarif)")
	scanCmd.Flags().StringVarP(&mergeStrategy, "merge", "m", "", "Estratégia de merge (same-linter, same-rule-and-title, none)")
	rootCmd.AddCommand(scanCmd)
}
