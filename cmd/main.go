package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"frontierlab/api"
	"frontierlab/internal/calculator"
	"frontierlab/internal/domain"
	"frontierlab/internal/export"
	"frontierlab/internal/frontier"
	"frontierlab/internal/logger"
	"frontierlab/internal/render"
	"frontierlab/internal/repository"
	"frontierlab/internal/universe"
	"frontierlab/internal/util"
	"frontierlab/pkg/quotes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frontierlab",
	Short: "Mean-variance efficient frontier toolkit",
}

var (
	sweepAssets      int
	sweepSeed        int64
	sweepSamples     int
	sweepMinExponent float64
	sweepMaxExponent float64
	sweepParallelism int
	sweepSymbols     []string
	sweepOutDir      string
	sweepDbPath      string
	sweepBudget      float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a risk-aversion sweep and write CSV + charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New()
		defer log.Sync()

		var (
			u   *domain.Universe
			err error
		)
		if len(sweepSymbols) > 0 {
			log.Infow("estimating universe from market data", "symbols", sweepSymbols)
			client := quotes.NewClient()
			end := time.Now()
			start := end.AddDate(-1, 0, 0)
			closes, err := client.GetDailyCloses(sweepSymbols, start, end)
			if err != nil {
				return fmt.Errorf("failed to fetch price history: %w", err)
			}
			u, err = universe.Estimate(sweepSymbols, quotes.AlignSeries(closes))
			if err != nil {
				return fmt.Errorf("failed to estimate universe: %w", err)
			}
		} else {
			u, err = universe.Generate(sweepSeed, sweepAssets)
			if err != nil {
				return fmt.Errorf("failed to generate universe: %w", err)
			}
		}

		gammas, err := frontier.GammaGrid(sweepMinExponent, sweepMaxExponent, sweepSamples)
		if err != nil {
			return fmt.Errorf("invalid gamma grid: %w", err)
		}

		service := frontier.NewService(log)
		service.Parallelism = sweepParallelism
		result, err := service.Sweep(cmd.Context(), frontier.SweepInput{
			Universe: *u,
			Gammas:   gammas,
		})
		if err != nil {
			return err
		}

		summary, err := calculator.Summarize(*result, 0)
		if err != nil {
			return fmt.Errorf("failed to summarize frontier: %w", err)
		}
		log.Infow("sweep summary",
			"riskRange", fmt.Sprintf("[%.4f, %.4f]", summary.MinRisk, summary.MaxRisk),
			"returnRange", fmt.Sprintf("[%.4f, %.4f]", summary.MinReturn, summary.MaxReturn),
			"maxSharpe", summary.MaxSharpe,
			"maxSharpeGamma", summary.MaxSharpeGamma,
		)

		if sweepBudget > 0 {
			best := result.Points[summary.MaxSharpeIndex]
			allocations, err := calculator.AllocateBudget(decimal.NewFromFloat(sweepBudget), result.Universe, best.Weights)
			if err != nil {
				return fmt.Errorf("failed to allocate budget: %w", err)
			}
			log.Infow("max-sharpe allocation", "gamma", best.Gamma, "budget", sweepBudget)
			util.Pprint(allocations)
		}

		if err := os.MkdirAll(sweepOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir %s: %w", sweepOutDir, err)
		}
		if err := writeArtifacts(sweepOutDir, *result); err != nil {
			return err
		}
		log.Infow("wrote artifacts", "dir", sweepOutDir)

		if sweepDbPath != "" {
			db, err := repository.NewDb(sweepDbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			run := &repository.Run{
				RunID:     uuid.New(),
				CreatedAt: time.Now().UTC(),
				Frontier:  *result,
			}
			if err := repository.NewRunRepository(db).Add(run); err != nil {
				return err
			}
			log.Infow("persisted run", "runId", run.RunID, "db", sweepDbPath)
		}
		return nil
	},
}

func writeArtifacts(dir string, f domain.Frontier) error {
	csvFile, err := os.Create(filepath.Join(dir, "frontier.csv"))
	if err != nil {
		return fmt.Errorf("failed to create frontier.csv: %w", err)
	}
	defer csvFile.Close()
	if err := export.WriteFrontierCSV(csvFile, f); err != nil {
		return err
	}

	markers := render.DefaultMarkerIndexes(len(f.Points), render.DefaultMarkerCount)
	frontierPng, err := render.FrontierChart(f, markers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "frontier.png"), frontierPng, 0o644); err != nil {
		return fmt.Errorf("failed to write frontier.png: %w", err)
	}

	allocationPng, err := render.AllocationChart(f, markers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "allocations.png"), allocationPng, 0o644); err != nil {
		return fmt.Errorf("failed to write allocations.png: %w", err)
	}
	return nil
}

var (
	apiPort   int
	apiDbPath string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the frontier API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New()
		defer log.Sync()

		db, err := repository.NewDb(apiDbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		handler := api.ApiHandler{
			SweepService:  frontier.NewService(log),
			RunRepository: repository.NewRunRepository(db),
			Logger:        log,
		}
		log.Infow("starting api", "port", apiPort, "db", apiDbPath)
		return handler.StartApi(apiPort)
	},
}

func init() {
	sweepCmd.Flags().IntVar(&sweepAssets, "assets", 10, "number of synthetic assets")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 1, "prng seed for the synthetic universe")
	sweepCmd.Flags().IntVar(&sweepSamples, "samples", 100, "number of risk-aversion samples")
	sweepCmd.Flags().Float64Var(&sweepMinExponent, "min-exp", -2, "log10 of the smallest gamma")
	sweepCmd.Flags().Float64Var(&sweepMaxExponent, "max-exp", 3, "log10 of the largest gamma")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallelism", 1, "concurrent solves (<=1 means sequential)")
	sweepCmd.Flags().StringSliceVar(&sweepSymbols, "symbols", nil, "estimate the universe from these tickers instead of generating one")
	sweepCmd.Flags().StringVar(&sweepOutDir, "out", "out", "output directory for csv and charts")
	sweepCmd.Flags().StringVar(&sweepDbPath, "db", "", "optional sqlite path to persist the run")
	sweepCmd.Flags().Float64Var(&sweepBudget, "budget", 0, "optional dollar budget to allocate at the max-sharpe point")

	apiCmd.Flags().IntVar(&apiPort, "port", 8080, "port to listen on")
	apiCmd.Flags().StringVar(&apiDbPath, "db", "frontierlab.db", "sqlite path for persisted runs")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(apiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
