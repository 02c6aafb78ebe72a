package mocks

import (
	"sync"
	"time"

	"github.com/turtacn/supplyrisk/pkg/constants"
)

// RecordingMetrics keeps counts of what was recorded so tests can assert on them.
type RecordingMetrics struct {
	mu          sync.Mutex
	Assessments int
	Sources     map[constants.ClimateSource]int
	Outcomes    map[constants.ClimateOutcome]int
	Deadlines   []bool
	RateLimited map[string]int
}

// NewRecordingMetrics creates an empty recorder.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Sources:     map[constants.ClimateSource]int{},
		Outcomes:    map[constants.ClimateOutcome]int{},
		RateLimited: map[string]int{},
	}
}

func (m *RecordingMetrics) RecordAssessment(string, string, bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assessments++
}

func (m *RecordingMetrics) RecordClimateFetch(outcome constants.ClimateOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[outcome]++
}

func (m *RecordingMetrics) RecordClimateSource(source constants.ClimateSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sources[source]++
}

func (m *RecordingMetrics) RecordBatchDeadline(exceeded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deadlines = append(m.Deadlines, exceeded)
}

func (m *RecordingMetrics) RecordCacheAccess(string, bool) {}

func (m *RecordingMetrics) RecordRateLimitHit(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimited[scope]++
}

// SourceCount returns how many times source was recorded.
func (m *RecordingMetrics) SourceCount(source constants.ClimateSource) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sources[source]
}
