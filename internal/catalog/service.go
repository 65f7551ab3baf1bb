package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"propvest-backend/internal/engine"
	"propvest-backend/internal/models"
)

var ErrPropertyNotFound = errors.New("Property not found")

// Service runs the calculation engine over the catalog and persists the
// resulting audits. Each property is a pure function of its own facts, so
// the run fans out across a bounded worker pool; within one property the
// pipeline stages are strictly sequential.
type Service struct {
	DB      *gorm.DB
	Engine  *engine.Engine
	Workers int
}

// Failure reports one excluded property with its typed failure kind. Failed
// properties are never given default or zero metrics.
type Failure struct {
	PropertyID uint   `json:"property_id"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
}

// RunSummary is the outcome of one catalog recalculation.
type RunSummary struct {
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures"`
	DurationMs int64     `json:"duration_ms"`
}

// RecalculateAll recomputes the audit for every property. Audits are
// replaced wholesale, never patched. The returned summary names every
// excluded property and its failure kind.
func (s *Service) RecalculateAll(ctx context.Context) (*RunSummary, error) {
	start := time.Now()

	var props []models.Property
	if err := s.DB.WithContext(ctx).Find(&props).Error; err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(props) && len(props) > 0 {
		workers = len(props)
	}

	jobs := make(chan models.Property)
	var mu sync.Mutex
	summary := &RunSummary{Total: len(props)}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for prop := range jobs {
				err := s.recalculate(ctx, &prop)
				mu.Lock()
				if err != nil {
					summary.Failed++
					summary.Failures = append(summary.Failures, Failure{
						PropertyID: prop.ID,
						Kind:       engine.FailureKind(err),
						Message:    err.Error(),
					})
				} else {
					summary.Succeeded++
				}
				mu.Unlock()
			}
		}()
	}

	for _, prop := range props {
		select {
		case jobs <- prop:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	// Deterministic failure ordering for logs and API payloads.
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].PropertyID < summary.Failures[j].PropertyID
	})

	summary.DurationMs = time.Since(start).Milliseconds()
	log.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int64("ms", summary.DurationMs).
		Msg("Catalog recalculation finished")

	return summary, nil
}

// RecalculateOne recomputes a single property's audit and returns the stored
// row. Calculation failures surface with their typed kind.
func (s *Service) RecalculateOne(ctx context.Context, propertyID uint) (*models.PropertyAudit, error) {
	var prop models.Property
	if err := s.DB.WithContext(ctx).First(&prop, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if err := s.recalculate(ctx, &prop); err != nil {
		return nil, err
	}

	var row models.PropertyAudit
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) recalculate(ctx context.Context, prop *models.Property) error {
	audit, err := s.Engine.Analyze(prop.ID, prop.Facts())
	if err != nil {
		return err
	}
	row, err := models.NewPropertyAudit(audit)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}
