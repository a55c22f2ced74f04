package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/timing-report/internal/service"
	"github.com/timing-report/pkg/model"
)

var (
	baselinePath  string
	optimizedPath string
	regionName    string
	topN          int
	thresholdPct  float64
	modeName      string
	outputDir     string
	writeCSV      bool
	writeJSON     bool
	writeSVG      bool
	runUUID       string
	saveRun       bool
	uploadRun     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a region's children between two timing summaries",
	Long: `Parse a baseline timing summary, rank the children of a region by mean
time, and optionally compare each child against an optimized summary.

Without --optimized the command reports the baseline ranking and each
child's share of the parent region. With --optimized it adds the delta
for every child that appears in both runs and labels children whose
change clears the threshold.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "Baseline timing summary file (required)")
	compareCmd.Flags().StringVarP(&optimizedPath, "optimized", "o", "", "Optimized timing summary file")
	compareCmd.Flags().StringVarP(&regionName, "region", "r", "", "Region whose children are compared (default from config, else first region)")
	compareCmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of children to report (0 uses the configured default)")
	compareCmd.Flags().Float64Var(&thresholdPct, "threshold", -1, "Percent change needed before a row is labeled (negative uses the configured default)")
	compareCmd.Flags().StringVarP(&modeName, "mode", "m", "", "Delta mode: percent or speedup (default from config)")
	compareCmd.Flags().StringVarP(&outputDir, "output", "d", "", "Directory for generated artifacts (default from config)")
	compareCmd.Flags().BoolVar(&writeCSV, "csv", false, "Write the report as CSV")
	compareCmd.Flags().BoolVar(&writeJSON, "json", false, "Write the report as JSON")
	compareCmd.Flags().BoolVar(&writeSVG, "svg", false, "Write the report as an SVG bar chart")
	compareCmd.Flags().StringVar(&runUUID, "uuid", "", "Run identifier (generated when empty)")
	compareCmd.Flags().BoolVar(&saveRun, "save", false, "Persist the run to the configured database")
	compareCmd.Flags().BoolVar(&uploadRun, "upload", false, "Upload generated artifacts to the configured storage")

	compareCmd.MarkFlagRequired("baseline")
}

func runCompare(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	conf := GetConfig()

	if _, err := os.Stat(baselinePath); err != nil {
		return fmt.Errorf("baseline file not accessible: %w", err)
	}
	if optimizedPath != "" {
		if _, err := os.Stat(optimizedPath); err != nil {
			return fmt.Errorf("optimized file not accessible: %w", err)
		}
	}

	name := modeName
	if name == "" {
		name = conf.Report.Mode
	}
	if name == "" {
		name = "percent"
	}
	mode, err := model.ParseCompareMode(name)
	if err != nil {
		return err
	}

	if runUUID == "" {
		runUUID = fmt.Sprintf("run-%d-%d", time.Now().Unix(), os.Getpid())
	}

	req := &service.CompareRequest{
		BaselinePath:  baselinePath,
		OptimizedPath: optimizedPath,
		Region:        regionName,
		TopN:          topN,
		Threshold:     thresholdPct,
		Mode:          mode,
		RunUUID:       runUUID,
		Save:          saveRun,
		Upload:        uploadRun,
	}

	if writeCSV || writeJSON || writeSVG {
		dir := outputDir
		if dir == "" {
			dir = conf.Report.OutputDir
		}
		if dir == "" {
			dir = "output"
		}
		runDir := filepath.Join(dir, runUUID)
		if writeCSV {
			req.CSVPath = filepath.Join(runDir, "report.csv")
		}
		if writeJSON {
			req.JSONPath = filepath.Join(runDir, "report.json")
		}
		if writeSVG {
			req.SVGPath = filepath.Join(runDir, "report.svg")
		}
	}

	log.Info("Comparing timing summaries")
	log.Info("  Baseline:  %s", baselinePath)
	if optimizedPath != "" {
		log.Info("  Optimized: %s", optimizedPath)
	}
	log.Info("  Run UUID:  %s", runUUID)

	svc := service.New(conf, log)
	defer svc.Close()

	result, err := svc.Compare(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, artifact := range result.Artifacts {
		if artifact.URL != "" {
			log.Info("Wrote %s: %s (uploaded to %s)", artifact.Name, artifact.LocalPath, artifact.URL)
		} else {
			log.Info("Wrote %s: %s", artifact.Name, artifact.LocalPath)
		}
	}
	if saveRun {
		log.Info("Run saved as %s", result.RunUUID)
	}

	return nil
}
