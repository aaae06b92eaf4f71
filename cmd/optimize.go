package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kestrelsolar/simulator/app"
	"github.com/kestrelsolar/simulator/config"
	"github.com/kestrelsolar/simulator/core/optimize"
)

var (
	optDimensions int
	optLowerKmh   float64
	optUpperKmh   float64
	optMaxEvals   int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the speed profile maximizing distance",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().IntVar(&optDimensions, "dimensions", 0, "number of speed-profile segments")
	optimizeCmd.Flags().Float64Var(&optLowerKmh, "lower", 0, "lower speed bound in km/h")
	optimizeCmd.Flags().Float64Var(&optUpperKmh, "upper", 0, "upper speed bound in km/h")
	optimizeCmd.Flags().IntVar(&optMaxEvals, "max-evals", 0, "maximum number of simulation runs")
	optimizeCmd.Flags().StringVar(&outJSON, "out-json", "", "write the best run's result to this JSON file")
	optimizeCmd.Flags().StringVar(&outCSV, "out-csv", "", "write the best run's series to this CSV file")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	svc.StartMetricsServer(ctx)

	best, result, err := svc.OptimizeStrategy(optimize.Config{
		Dimensions:     optDimensions,
		LowerKmh:       optLowerKmh,
		UpperKmh:       optUpperKmh,
		MaxEvaluations: optMaxEvals,
	})
	if err != nil {
		return err
	}
	fmt.Printf("best profile (km/h):")
	for _, v := range best {
		fmt.Printf(" %.1f", v)
	}
	fmt.Printf("\ndistance: %.2fkm of %.2fkm, final SOC: %.1f%%\n",
		result.DistanceTravelledKm, result.RouteLengthKm, result.FinalSOCPercent)
	return writeOutputs(result)
}
