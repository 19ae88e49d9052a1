package metrics

import (
	"sync"
	"time"

	"github.com/rovlab/terranav/pkg/datastructure"
)

// SolveMetrics collects counters of one planner run. the planner writes
// them from its solve loop, the service layer reads a snapshot after
// (or, for progress streaming, during) the solve, hence the mutex.
type SolveMetrics struct {
	mu sync.Mutex

	iterations        int
	sampledStates     int
	rejectedStates    int
	rejectedEdges     int
	improvedSolutions int
	bestCost          datastructure.Cost
	duration          time.Duration
}

func NewSolveMetrics() *SolveMetrics {
	return &SolveMetrics{
		bestCost: datastructure.InfiniteCost(),
	}
}

func (m *SolveMetrics) AddIteration() {
	m.mu.Lock()
	m.iterations++
	m.mu.Unlock()
}

func (m *SolveMetrics) AddSampledState() {
	m.mu.Lock()
	m.sampledStates++
	m.mu.Unlock()
}

func (m *SolveMetrics) AddRejectedState() {
	m.mu.Lock()
	m.rejectedStates++
	m.mu.Unlock()
}

func (m *SolveMetrics) AddRejectedEdge() {
	m.mu.Lock()
	m.rejectedEdges++
	m.mu.Unlock()
}

func (m *SolveMetrics) RecordImprovedSolution(cost datastructure.Cost) {
	m.mu.Lock()
	m.improvedSolutions++
	m.bestCost = cost
	m.mu.Unlock()
}

func (m *SolveMetrics) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// Snapshot. a copyable view for logging and API responses. BestCost is
// -1 while no solution exists, json cannot carry +Inf.
type Snapshot struct {
	Iterations        int     `json:"iterations"`
	SampledStates     int     `json:"sampled_states"`
	RejectedStates    int     `json:"rejected_states"`
	RejectedEdges     int     `json:"rejected_edges"`
	ImprovedSolutions int     `json:"improved_solutions"`
	BestCost          float64 `json:"best_cost"`
	DurationSeconds   float64 `json:"duration_seconds"`
}

func (m *SolveMetrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := -1.0
	if !m.bestCost.IsInfinite() {
		best = m.bestCost.Value()
	}
	return Snapshot{
		Iterations:        m.iterations,
		SampledStates:     m.sampledStates,
		RejectedStates:    m.rejectedStates,
		RejectedEdges:     m.rejectedEdges,
		ImprovedSolutions: m.improvedSolutions,
		BestCost:          best,
		DurationSeconds:   m.duration.Seconds(),
	}
}
