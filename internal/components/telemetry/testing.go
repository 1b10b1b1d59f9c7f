package telemetry

import (
	"sync"
	"testing"
)

type Report struct {
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory and echoes it to the test log, it
// is meant to be used in tests to assert that components report what they should.
type Recorder struct {
	t testing.TB

	mu       sync.Mutex
	broken   []Report
	warnings []Report
	debug    []Report
	counts   map[string]int64
}

func SetupForTesting(t testing.TB) *Recorder {
	return &Recorder{t: t, counts: map[string]int64{}}
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.Logf("[broken] %s %v", id, params)
	r.broken = append(r.broken, Report{Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.Logf("[warning] %s %v", id, params)
	r.warnings = append(r.warnings, Report{Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = append(r.debug, Report{Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[id] = count
}

func (r *Recorder) Broken() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.broken...)
}

func (r *Recorder) Warnings() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.warnings...)
}

func (r *Recorder) Count(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[id]
}
