// Package seed loads vulnerability records from JSON feed files into the
// store, for demo setups and offline imports.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/telemetry"
)

// Loader loads vulnerability records from JSON files into the database.
type Loader struct {
	store ports.VulnerabilityStore
}

// NewLoader creates a new seed loader.
func NewLoader(store ports.VulnerabilityStore) *Loader {
	return &Loader{store: store}
}

// LoadFromFile loads vulnerability records from a JSON file. Records that
// fail validation are skipped and counted, not fatal.
func (l *Loader) LoadFromFile(ctx context.Context, filepath string) (int, error) {
	log.Printf("[SEED] Loading vulnerabilities from %s", filepath)

	data, err := os.ReadFile(filepath)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []domain.VulnerabilityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	loaded := 0
	failed := 0

	for _, record := range records {
		if err := l.store.Upsert(ctx, record); err != nil {
			log.Printf("[SEED] Failed to load %s: %v", record.ID, err)
			failed++
		} else {
			loaded++
		}
	}

	telemetry.VulnerabilitiesImported.WithLabelValues("seed").Add(float64(loaded))
	log.Printf("[SEED] Loaded %d vulnerabilities (%d failed)", loaded, failed)

	return loaded, nil
}

// LoadFromMultipleFiles loads records from multiple JSON files.
func (l *Loader) LoadFromMultipleFiles(ctx context.Context, filepaths []string) (int, error) {
	total := 0
	succeeded := 0

	for _, filepath := range filepaths {
		n, err := l.LoadFromFile(ctx, filepath)
		if err != nil {
			log.Printf("[SEED] Failed to load %s: %v", filepath, err)
			continue
		}
		total += n
		succeeded++
	}

	log.Printf("[SEED] Loaded from %d/%d files", succeeded, len(filepaths))
	return total, nil
}
