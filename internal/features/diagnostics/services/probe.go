package services

import (
	"context"
	"time"

	"newswire/internal/core"
	"newswire/internal/features/diagnostics/models"
)

const (
	// DefaultPingTimeout bounds the connectivity check
	DefaultPingTimeout = 5 * time.Second
	// MaxListedTables caps the collections array
	MaxListedTables = 10
)

// ProbeService checks database reachability for the diagnostics report
type ProbeService struct {
	db          *core.Database
	openErr     error
	urlSet      bool
	nameSet     bool
	pingTimeout time.Duration
	logger      *core.Logger
}

// NewProbeService creates a new probe service. db is nil when no database is
// configured; openErr is the error from opening it, if any.
func NewProbeService(db *core.Database, openErr error, urlSet, nameSet bool, logger *core.Logger) *ProbeService {
	return &ProbeService{
		db:          db,
		openErr:     openErr,
		urlSet:      urlSet,
		nameSet:     nameSet,
		pingTimeout: DefaultPingTimeout,
		logger:      logger,
	}
}

// SetPingTimeout overrides the default ping timeout
func (p *ProbeService) SetPingTimeout(timeout time.Duration) {
	if timeout > 0 {
		p.pingTimeout = timeout
	}
}

// Probe never fails; every problem is reported as a status string
func (p *ProbeService) Probe(ctx context.Context) *models.Report {
	report := models.NewReport(p.urlSet, p.nameSet)
	logger := p.logger.WithContext(ctx)

	if p.openErr != nil {
		logger.Warn("Database could not be opened", "error", p.openErr)
		report.Database = models.DatabaseError(p.openErr)
		return report
	}

	if p.db == nil {
		return report
	}

	if err := p.db.PingWithTimeout(ctx, p.pingTimeout); err != nil {
		logger.Warn("Database ping failed", "driver", p.db.Driver(), "error", err)
		report.Database = models.DatabaseError(err)
		return report
	}

	report.Database = models.DatabaseAvailable
	report.ConnectionStatus = models.ConnectionConnected

	tables, err := p.db.ListTables(ctx, MaxListedTables)
	if err != nil {
		logger.Warn("Listing tables failed", "driver", p.db.Driver(), "error", err)
		report.Database = models.ListingError(err)
		return report
	}

	report.Database = models.DatabaseWorking
	report.Collections = tables
	p.db.LogStats()

	return report
}
