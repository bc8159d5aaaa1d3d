package claims

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/claimsketch-com/claimsketchgo/internal/config"
	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/services/report"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// ErrInspectionNotReady means the inspection has not been marked
// complete, so there is no final report to push yet.
var ErrInspectionNotReady = errors.New("inspection is not complete")

// Store is the slice of persistence the exporter needs.
type Store interface {
	GetInspection(ctx context.Context, id string) (*models.Inspection, error)
	LoadState(ctx context.Context, inspectionID string) (sketch.State, error)
	PendingExports(ctx context.Context) ([]models.Inspection, error)
	MarkExported(ctx context.Context, id string) error
}

// ExportService pushes completed inspection reports into the claims
// system in the background.
type ExportService struct {
	client *Client
	store  Store
	cfg    *config.Config
	log    *zap.SugaredLogger
	stop   chan struct{}

	// mu serializes export pipelines. The background sweep and the
	// manual export endpoint share one XML-RPC client, and the uid it
	// caches after Authenticate must not be written while another
	// export reads it.
	mu sync.Mutex
}

// NewExportService creates the export service.
func NewExportService(st Store, cfg *config.Config, log *zap.SugaredLogger) *ExportService {
	return &ExportService{
		client: NewClient(cfg.Claims.URL, cfg.Claims.Database, cfg.Claims.Username, cfg.Claims.Password),
		store:  st,
		cfg:    cfg,
		log:    log,
		stop:   make(chan struct{}),
	}
}

// Start begins the background export loop.
func (s *ExportService) Start() {
	if s.cfg.Claims.URL == "" {
		s.log.Info("Claims export disabled: CLAIMS_URL not configured")
		return
	}

	go func() {
		s.log.Info("📡 Claims export service started")

		s.mu.Lock()
		_, err := s.client.Authenticate()
		s.mu.Unlock()
		if err != nil {
			s.log.Errorf("❌ Claims authentication failed: %v", err)
			return
		}

		// Give the server a moment to finish starting up.
		time.Sleep(5 * time.Second)
		s.runExport()

		interval := time.Duration(s.cfg.Claims.SyncInterval) * time.Minute
		if s.cfg.Claims.SyncInterval <= 0 {
			interval = 15 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runExport()
			case <-s.stop:
				s.log.Info("🛑 Claims export service stopped")
				return
			}
		}
	}()
}

// Stop halts the export loop.
func (s *ExportService) Stop() {
	close(s.stop)
}

// ExportNow pushes a single inspection immediately. Used by the
// manual export endpoint; an already-exported inspection is pushed
// again so an adjuster can re-attach a corrected report.
func (s *ExportService) ExportNow(ctx context.Context, inspectionID string) error {
	insp, err := s.store.GetInspection(ctx, inspectionID)
	if err != nil {
		return err
	}
	if insp.Status != models.InspectionComplete {
		return ErrInspectionNotReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportOne(ctx, insp)
}

// runExport sweeps for completed inspections that have not been
// pushed yet. Failures are left pending for the next sweep.
func (s *ExportService) runExport() {
	ctx := context.Background()

	pending, err := s.store.PendingExports(ctx)
	if err != nil {
		s.log.Errorf("❌ Claims export scan failed: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	s.log.Infof("🔄 Claims: exporting %d inspection(s)...", len(pending))
	exported := 0
	for i := range pending {
		if err := s.exportPending(ctx, &pending[i]); err != nil {
			s.log.Warnw("⚠️ Claims export failed, will retry next sweep",
				"inspection", pending[i].ID, "claim", pending[i].ClaimNumber, "error", err)
			continue
		}
		exported++
	}
	s.log.Infof("✅ Claims: exported %d of %d inspection(s)", exported, len(pending))
}

// exportPending exports one inspection from a sweep scan. The exported
// flag is re-read under the lock: a manual export may have finished
// between the scan and this call, and the sweep must not attach the
// same report a second time.
func (s *ExportService) exportPending(ctx context.Context, insp *models.Inspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.store.GetInspection(ctx, insp.ID)
	if err != nil {
		return fmt.Errorf("load inspection: %w", err)
	}
	if cur.ExportedAt != nil {
		return nil
	}
	return s.exportOne(ctx, cur)
}

// exportOne renders the report, attaches it to the matching claim and
// advances the claim stage. Callers hold mu.
func (s *ExportService) exportOne(ctx context.Context, insp *models.Inspection) error {
	if !s.client.Authenticated() {
		if _, err := s.client.Authenticate(); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
	}

	st, err := s.store.LoadState(ctx, insp.ID)
	if err != nil {
		return fmt.Errorf("load inspection state: %w", err)
	}

	params := sketch.Params{
		Scale:     s.cfg.Sketch.Scale,
		MinRoomW:  s.cfg.Sketch.MinRoomW,
		MinRoomH:  s.cfg.Sketch.MinRoomH,
		Tolerance: s.cfg.Sketch.WallTolerance,
	}
	plan := sketch.BuildPlan(insp.ID, st, params)
	viewerURL := s.cfg.Server.PublicURL + "/?inspection=" + insp.ID
	pdf, err := report.BuildPDF(insp, plan, viewerURL)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	claimID, err := s.client.FindClaim(insp.ClaimNumber)
	if err != nil {
		return fmt.Errorf("claim %s: %w", insp.ClaimNumber, err)
	}

	filename := fmt.Sprintf("inspection_%s.pdf", insp.ClaimNumber)
	if _, err := s.client.AttachReport(claimID, filename, pdf); err != nil {
		return fmt.Errorf("attach report: %w", err)
	}
	if err := s.client.SetClaimStage(claimID, StageInspectionReceived); err != nil {
		return fmt.Errorf("advance claim stage: %w", err)
	}
	if err := s.store.MarkExported(ctx, insp.ID); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}

	s.log.Infof("✅ Claims: report for %s attached to claim %d", insp.ClaimNumber, claimID)
	return nil
}
