package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/config"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/logging"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/merge"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/reconcile"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/scanner"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/tracker"
)

var dryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync [caminho]",
	Short: "Escaneia e reconcilia os findings com as issues do repositório",
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

		owner, name, err := cfg.RepoParts()
		if err != nil {
			logger.Errorw("Erro na config do repositório", "erro", err)
			os.Exit(1)
		}

		root := args[0]
		findings, err := scanner.Run(cmd.Context(), logger, root, cfg.ToolEnabled)
		if err != nil {
			logger.Errorw("Erro ao escanear", "erro", err)
			os.Exit(1)
		}
		merged := merge.Merge(findings, merge.ParseStrategy(cfg.MergeStrategy))

		gh := tracker.NewGitHub(config.Token(), owner, name)

		// O estado do tracker é a única fonte de verdade: lido por completo
		// antes de qualquer decisão de diff. Falha aqui aborta o run inteiro,
		// sem reconciliação parcial.
		raw, err := gh.List(cmd.Context(), []string{"vibecop"}, tracker.StateAll)
		if err != nil {
			logger.Errorw("Erro ao listar registros; reconciliação abortada", "erro", err)
			os.Exit(1)
		}
		records := reconcile.FromTracker(raw)
		run := reconcile.NextRun(records)

		plan := reconcile.Diff(merged, records, run, reconcile.Options{
			SeverityThreshold:   model.Severity(cfg.SeverityThreshold),
			ConfidenceThreshold: model.Confidence(cfg.ConfidenceThreshold),
			MaxNewPerRun:        cfg.MaxNewPerRun,
			CloseResolved:       cfg.CloseResolved,
			MissTolerance:       cfg.MissTolerance,
			ReopenClosed:        cfg.ReopenClosed,
		})

		logger.Infow("plano de reconciliação",
			"run", plan.Run,
			"creates", len(plan.Creates),
			"updates", len(plan.Updates),
			"reopens", len(plan.Reopens),
			"closes", len(plan.Closes),
			"deferred", len(plan.Deferred),
			"skipped", len(plan.Skipped),
		)

		err = reconcile.Apply(cmd.Context(), logger, gh, plan, reconcile.ApplyOptions{
			Pace:   time.Duration(cfg.PaceMs) * time.Millisecond,
			DryRun: dryRun,
		})
		if err != nil {
			logger.Errorw("Erro ao aplicar plano", "erro", err)
			os.Exit(1)
		}
	},
}

func init() {
	syncCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Caminho do arquivo de config")
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Calcula o plano sem aplicar mutações")
	rootCmd.AddCommand(syncCmd)
}
