package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timing-report/internal/formatter"
	"github.com/timing-report/internal/service"
)

var (
	historyRegion string
	historyLimit  int
	historyUUID   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously saved comparison runs",
	Long: `List comparison runs persisted with --save, newest first. With --uuid the
full report of a single run is printed instead.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyRegion, "region", "r", "", "Only list runs for this region")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyUUID, "uuid", "", "Show the stored report for a single run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	svc := service.New(GetConfig(), log)
	defer svc.Close()

	runs, err := svc.Runs()
	if err != nil {
		return err
	}

	if historyUUID != "" {
		run, err := runs.GetRunByUUID(cmd.Context(), historyUUID)
		if err != nil {
			return err
		}
		report, err := run.ToReport()
		if err != nil {
			return err
		}
		log.Info("Run %s (%s, saved %s)", run.RunUUID, run.BaselinePath, run.CreatedAt.Format("2006-01-02 15:04:05"))
		formatter.NewTableFormatter().Format(report, log)
		return nil
	}

	list, err := runs.ListRuns(cmd.Context(), historyRegion, historyLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		log.Info("No saved runs found")
		return nil
	}

	log.Info("%-24s %-20s %12s %-8s %-9s %s", "UUID", "REGION", "PARENT MEAN", "MODE", "OPTIMIZED", "SAVED")
	for _, run := range list {
		optimized := "no"
		if run.HasOptimized {
			optimized = "yes"
		}
		log.Info("%-24s %-20s %12.6f %-8s %-9s %s",
			run.RunUUID, run.Region, run.ParentMean, run.Mode, optimized,
			run.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
