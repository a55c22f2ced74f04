// Package service runs the comparison pipeline end to end: parse the
// summary documents, resolve the region, rank and compare its children,
// render the outputs, and optionally persist and upload the results.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/timing-report/internal/chart"
	"github.com/timing-report/internal/formatter"
	"github.com/timing-report/internal/parser/summary"
	"github.com/timing-report/internal/region"
	"github.com/timing-report/internal/repository"
	"github.com/timing-report/internal/statistics"
	"github.com/timing-report/internal/storage"
	"github.com/timing-report/pkg/config"
	apperrors "github.com/timing-report/pkg/errors"
	"github.com/timing-report/pkg/model"
	"github.com/timing-report/pkg/utils"
	"github.com/timing-report/pkg/writer"
)

const tracerName = "timing-report"

// CompareRequest describes one comparison run. Zero values fall back to
// the configured report defaults.
type CompareRequest struct {
	BaselinePath  string
	OptimizedPath string

	// Region selects the parent region; empty picks the configured default
	// region when the baseline document has it, else the first record.
	Region string

	TopN      int
	Threshold float64 // negative means use the configured default
	Mode      model.CompareMode

	// Output artifact paths; empty skips that artifact.
	CSVPath  string
	JSONPath string
	SVGPath  string

	// RunUUID identifies the run in history and storage keys;
	// auto-generated when empty.
	RunUUID string

	// Save persists the run to the run history database.
	Save bool

	// Upload copies the written artifacts to the configured storage.
	Upload bool
}

// Artifact is one file produced by a run.
type Artifact struct {
	Name      string `json:"name"`
	LocalPath string `json:"local_path"`
	URL       string `json:"url,omitempty"`
}

// CompareResult is the outcome of one comparison run.
type CompareResult struct {
	RunUUID   string                  `json:"run_uuid"`
	Report    *model.ComparisonReport `json:"report"`
	Artifacts []Artifact              `json:"artifacts,omitempty"`
}

// Service wires the pipeline components together.
type Service struct {
	cfg    *config.Config
	logger utils.Logger
	parser *summary.Parser

	repos *repository.Repositories
	store storage.Storage
}

// New creates a new Service instance.
func New(cfg *config.Config, logger utils.Logger) *Service {
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &Service{
		cfg:    cfg,
		logger: logger,
		parser: summary.NewParser(),
	}
}

// Close releases the database connection if one was opened.
func (s *Service) Close() error {
	if s.repos != nil {
		return s.repos.Close()
	}
	return nil
}

// Compare runs the full pipeline for one request.
func (s *Service) Compare(ctx context.Context, req *CompareRequest) (*CompareResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "service.Compare")
	defer span.End()

	timer := utils.NewTimer("compare")

	var baseline, optimized *model.SummaryDocument
	err := timer.TimeFunc("parse baseline", func() error {
		var err error
		baseline, err = s.parser.ParseFile(ctx, req.BaselinePath)
		return err
	})
	if err != nil {
		return nil, err
	}

	if req.OptimizedPath != "" {
		err := timer.TimeFunc("parse optimized", func() error {
			var err error
			optimized, err = s.parser.ParseFile(ctx, req.OptimizedPath)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	regionName := s.resolveRegionName(req, baseline)
	parent, parentIdx, err := region.FindRegion(baseline, regionName)
	if err != nil {
		return nil, err
	}

	children := region.CollectChildren(baseline, parentIdx)
	if len(children) == 0 {
		s.logger.Warn("region %q has no child regions; nothing to report", regionName)
	}

	var registry region.Registry
	if optimized != nil {
		if !optimized.HasRegion(regionName) {
			s.logger.Warn("region %q not found in optimized document %s; rows will have no counterpart",
				regionName, req.OptimizedPath)
		}
		registry = region.BuildRegistry(optimized)
	}

	report := s.buildReport(req, regionName, parent, children, registry)
	formatter.NewTableFormatter().Format(report, s.logger)

	result := &CompareResult{
		RunUUID: req.RunUUID,
		Report:  report,
	}
	if result.RunUUID == "" {
		result.RunUUID = generateRunUUID()
	}

	if err := timer.TimeFunc("write artifacts", func() error {
		return s.writeArtifacts(req, report, result)
	}); err != nil {
		return nil, err
	}

	if req.Save {
		if err := timer.TimeFunc("save run", func() error {
			return s.saveRun(ctx, req, result)
		}); err != nil {
			return nil, err
		}
	}

	if req.Upload {
		if err := timer.TimeFunc("upload artifacts", func() error {
			return s.uploadArtifacts(ctx, result)
		}); err != nil {
			return nil, err
		}
	}

	timer.PrintSummary(s.logger)
	return result, nil
}

// resolveRegionName applies the region fallbacks: explicit request, then
// the configured default if the document has it, then the first record.
func (s *Service) resolveRegionName(req *CompareRequest, doc *model.SummaryDocument) string {
	if req.Region != "" {
		return req.Region
	}
	if def := s.cfg.Report.DefaultRegion; def != "" && doc.HasRegion(def) {
		return def
	}
	// The parser guarantees at least one record.
	return doc.First().Name
}

func (s *Service) buildReport(req *CompareRequest, regionName string, parent model.RegionRecord, children []model.RegionRecord, registry region.Registry) *model.ComparisonReport {
	topN := req.TopN
	if topN <= 0 {
		topN = s.cfg.Report.TopN
	}
	threshold := req.Threshold
	if threshold < 0 {
		threshold = s.cfg.Report.Threshold
	}

	comparator := statistics.NewComparator(
		statistics.WithTopN(topN),
		statistics.WithThreshold(threshold),
		statistics.WithMode(req.Mode),
	)
	rows := comparator.Compare(parent, children, registry)

	return &model.ComparisonReport{
		Region:       regionName,
		ParentMean:   parent.Mean,
		TopN:         topN,
		Mode:         req.Mode,
		ModeName:     req.Mode.String(),
		Threshold:    threshold,
		HasOptimized: registry != nil,
		Rows:         rows,
	}
}

func (s *Service) writeArtifacts(req *CompareRequest, report *model.ComparisonReport, result *CompareResult) error {
	if req.CSVPath != "" {
		if err := ensureParentDir(req.CSVPath); err != nil {
			return err
		}
		if err := writer.NewCSVWriter().WriteToFile(report, req.CSVPath); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteError, "failed to write CSV report", err)
		}
		result.Artifacts = append(result.Artifacts, Artifact{Name: filepath.Base(req.CSVPath), LocalPath: req.CSVPath})
		s.logger.Info("Wrote CSV report: %s", req.CSVPath)
	}

	if req.JSONPath != "" {
		if err := ensureParentDir(req.JSONPath); err != nil {
			return err
		}
		w := writer.NewPrettyJSONWriter[*model.ComparisonReport]()
		if err := w.WriteToFile(report, req.JSONPath); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteError, "failed to write JSON report", err)
		}
		result.Artifacts = append(result.Artifacts, Artifact{Name: filepath.Base(req.JSONPath), LocalPath: req.JSONPath})
		s.logger.Info("Wrote JSON report: %s", req.JSONPath)
	}

	if req.SVGPath != "" {
		if len(report.Rows) == 0 {
			s.logger.Warn("skipping chart: no rows to draw")
			return nil
		}
		c, err := chart.NewGenerator(nil).Generate(report)
		if err != nil {
			return err
		}
		if err := ensureParentDir(req.SVGPath); err != nil {
			return err
		}
		if err := chart.NewSVGWriter().WriteToFile(c, req.SVGPath); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteError, "failed to write SVG chart", err)
		}
		result.Artifacts = append(result.Artifacts, Artifact{Name: filepath.Base(req.SVGPath), LocalPath: req.SVGPath})
		s.logger.Info("Wrote SVG chart: %s", req.SVGPath)
	}

	return nil
}

func (s *Service) saveRun(ctx context.Context, req *CompareRequest, result *CompareResult) error {
	if err := s.initDatabase(); err != nil {
		return err
	}

	run, err := repository.NewComparisonRun(result.RunUUID, req.BaselinePath, req.OptimizedPath, result.Report)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to build run record", err)
	}

	if err := s.repos.Runs.SaveRun(ctx, run); err != nil {
		return err
	}

	s.logger.Info("Saved run %s to history", result.RunUUID)
	return nil
}

func (s *Service) uploadArtifacts(ctx context.Context, result *CompareResult) error {
	if len(result.Artifacts) == 0 {
		s.logger.Warn("nothing to upload: no artifacts were written")
		return nil
	}

	if err := s.initStorage(); err != nil {
		return err
	}

	for i := range result.Artifacts {
		a := &result.Artifacts[i]
		key := fmt.Sprintf("runs/%s/%s", result.RunUUID, a.Name)
		if err := s.store.UploadFile(ctx, key, a.LocalPath); err != nil {
			return apperrors.Wrap(apperrors.CodeUploadError, "failed to upload "+a.Name, err)
		}
		a.URL = s.store.GetURL(key)
		s.logger.Info("Uploaded %s -> %s", a.Name, a.URL)
	}

	return nil
}

func (s *Service) initDatabase() error {
	if s.repos != nil {
		return nil
	}

	s.logger.Debug("Connecting to database (%s)...", s.cfg.Database.Type)

	db, err := repository.NewGormDB(&s.cfg.Database)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to open run history database", err)
	}
	if err := repository.Migrate(db); err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to migrate run history schema", err)
	}

	s.repos = repository.NewRepositories(db)
	return nil
}

func (s *Service) initStorage() error {
	if s.store != nil {
		return nil
	}

	store, err := storage.NewStorage(&s.cfg.Storage)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUploadError, "failed to initialize storage", err)
	}

	s.store = store
	return nil
}

// Runs returns the run history repository, opening the database on first
// use.
func (s *Service) Runs() (repository.RunRepository, error) {
	if err := s.initDatabase(); err != nil {
		return nil, err
	}
	return s.repos.Runs, nil
}

func ensureParentDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

func generateRunUUID() string {
	return fmt.Sprintf("run-%d-%d", time.Now().Unix(), os.Getpid())
}
