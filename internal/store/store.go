// Package store keeps finished comparison reports addressable by id so the
// HTTP layer can serve lookups and exports after the comparison returns.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/lexbridge/lexbridge/internal/core/model"
)

var ErrNotFound = errors.New("comparison not found")

// ComparisonStore persists comparison reports. Implementations must be safe
// for concurrent use.
type ComparisonStore interface {
	Save(report model.Report) error
	Get(id string) (model.Report, error)
	List() []string
}

// Memory is the in-process store used by default and in tests.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]model.Report
}

func NewMemory() *Memory {
	return &Memory{reports: make(map[string]model.Report)}
}

func (m *Memory) Save(report model.Report) error {
	if report.ComparisonID == "" {
		return errors.New("report has no comparison id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ComparisonID] = report
	return nil
}

func (m *Memory) Get(id string) (model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[id]
	if !ok {
		return model.Report{}, ErrNotFound
	}
	return report, nil
}

func (m *Memory) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.reports))
	for id := range m.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
