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
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/pkg/export"
)

var (
	runSpeeds []float64
	outJSON   string
	outCSV    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation with a fixed speed profile",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Float64SliceVar(&runSpeeds, "speeds", []float64{30}, "speed profile in km/h, one entry per segment")
	runCmd.Flags().StringVar(&outJSON, "out-json", "", "write the full result to this JSON file")
	runCmd.Flags().StringVar(&outCSV, "out-csv", "", "write the per-tick series to this CSV file")
}

func runSimulation(cmd *cobra.Command, args []string) error {
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

	result, err := svc.RunSimulation(runSpeeds)
	if err != nil {
		return err
	}
	fmt.Printf("distance: %.2fkm of %.2fkm, time in motion: %s, final SOC: %.1f%%\n",
		result.DistanceTravelledKm, result.RouteLengthKm, result.TimeTaken, result.FinalSOCPercent)
	return writeOutputs(result)
}

func writeOutputs(result *model.SimulationResult) error {
	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteJSON(f, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if outCSV != "" {
		f, err := os.Create(outCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, result); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return nil
}
