// Package quality fetches and holds the data-quality scan of a migration.
//
// The scan comes from a Source. client.API satisfies Source, so production
// callers pass the API client directly; SampleSource serves the fixed
// dataset used while a migration has no scan of its own yet.
package quality

import (
	"context"
	"fmt"
	"sync"

	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/skyliftdata/skylift-go/model"
)

type Source interface {
	ScanDataQuality(ctx context.Context, migrationID string) (*model.DataQualityScan, error)
}

// Scanner runs quality scans and retains the latest result. A failed scan
// keeps the previous result.
type Scanner struct {
	source Source
	log    logger.Logger

	mu   sync.RWMutex
	scan *model.DataQualityScan
}

func New(source Source, log logger.Logger) *Scanner {
	return &Scanner{
		source: source,
		log:    log.Child("quality"),
	}
}

// Scan fetches a fresh scan for the migration and replaces the held one
// wholesale. Earlier issues absent from the new scan are gone, not merged.
func (s *Scanner) Scan(ctx context.Context, migrationID string) (*model.DataQualityScan, error) {
	scan, err := s.source.ScanDataQuality(ctx, migrationID)
	if err != nil {
		s.log.Warnn("scanning data quality",
			logger.NewStringField("migrationId", migrationID),
			obskit.Error(err),
		)
		return nil, fmt.Errorf("scanning data quality: %w", err)
	}

	s.mu.Lock()
	s.scan = scan
	s.mu.Unlock()

	s.log.Infon("data quality scan finished",
		logger.NewStringField("migrationId", migrationID),
		logger.NewIntField("issues", int64(scan.TotalIssues())),
	)
	return scan, nil
}

// Current returns the most recent successful scan, nil before the first one.
func (s *Scanner) Current() *model.DataQualityScan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scan
}
