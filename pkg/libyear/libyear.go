// Package libyear computes dependency-age reports from artifact
// publication timestamps.
//
// The libyear metric is the elapsed time, in 365.25-day years, between a
// dependency's publication and now. A project's total libyears is the sum
// over its dependencies, a single number tracking how far behind its
// dependency set has drifted.
package libyear

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvnage/mvnage/pkg/maven"
)

// DefaultWorkers is the default fan-out across coordinates. Each
// coordinate's repository fallback stays strictly sequential; only distinct
// coordinates are resolved in parallel.
const DefaultWorkers = 8

// Resolver resolves the publication timestamp of a coordinate in
// milliseconds since the Unix epoch.
type Resolver interface {
	LastModified(ctx context.Context, coord maven.Coordinate) (int64, error)
}

// Entry is the per-dependency outcome of a report run.
type Entry struct {
	Coordinate maven.Coordinate `json:"coordinate"`
	ReleasedAt *time.Time       `json:"released_at,omitempty"`
	AgeYears   float64          `json:"age_years"`
	Err        string           `json:"error,omitempty"`
}

// Report aggregates the age of a set of dependencies.
type Report struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
	TotalYears  float64   `json:"total_years"`
	Failed      int       `json:"failed"`
}

// Options configures a report run.
type Options struct {
	Workers int       // concurrent coordinate resolutions (default: DefaultWorkers)
	Now     time.Time // reference time for age computation (default: time.Now)
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// AgeYears returns the libyear age of a release at the given reference
// time, floored at zero so clock skew never produces a negative age.
func AgeYears(releasedAt, now time.Time) float64 {
	const hoursPerYear = 24 * 365.25
	age := now.Sub(releasedAt).Hours() / hoursPerYear
	if age < 0 {
		return 0
	}
	return age
}

// Run resolves every coordinate through res and aggregates the results.
//
// Coordinates are fanned out over a bounded worker pool; entries are
// returned in input order regardless of completion order. A failed
// resolution is recorded on its entry and counted in Failed but never
// aborts the rest of the run.
func Run(ctx context.Context, res Resolver, coords []maven.Coordinate, opts Options) *Report {
	opts = opts.withDefaults()

	entries := make([]Entry, len(coords))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := min(opts.Workers, max(len(coords), 1))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = resolveOne(ctx, res, coords[i], opts.Now)
			}
		}()
	}

	for i := range coords {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	rep := &Report{
		ID:          uuid.New(),
		GeneratedAt: opts.Now,
		Entries:     entries,
	}
	for _, e := range entries {
		if e.Err != "" {
			rep.Failed++
			continue
		}
		rep.TotalYears += e.AgeYears
	}
	return rep
}

func resolveOne(ctx context.Context, res Resolver, coord maven.Coordinate, now time.Time) Entry {
	e := Entry{Coordinate: coord}

	ts, err := res.LastModified(ctx, coord)
	if err != nil {
		e.Err = err.Error()
		return e
	}

	released := time.UnixMilli(ts).UTC()
	e.ReleasedAt = &released
	e.AgeYears = AgeYears(released, now)
	return e
}
