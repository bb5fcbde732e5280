package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/traffydata/ticket-etl/internal/domain"
	"github.com/traffydata/ticket-etl/internal/observability"
)

// clock is a package-level time source so tests can freeze run timings.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Extractor reads the full raw ticket set from the source. It is the first
// barrier: nothing transforms until it returns.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawTicket, error)
}

// Transformer converts one raw ticket into a clean record plus degradation
// flags. Implementations must be safe for concurrent use across records.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawTicket) (domain.CleanTicket, domain.RecordFlags)
}

// Loader writes the complete clean record set to a destination. It is the
// second barrier: it observes every transformed record or none.
type Loader interface {
	Load(ctx context.Context, tickets []domain.CleanTicket) error
}

// Summary is the user-visible outcome of one run.
type Summary struct {
	TicketsIn          int
	TicketsOut         int
	CommentsFiltered   int
	NullCoordinateRows int
	ImputedLatitudes   int
	ImputedLongitudes  int
	InvalidTimestamps  int
}

// Pipeline sequences extract → transform → export over the full record set.
// Records are independent, so the transform stage fans out across workers;
// the two barriers (extract, load) are the only ordering points.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	workers     int
	ready       atomic.Bool
}

// New creates a Pipeline. A workers value of 0 means one worker per CPU.
func New(e Extractor, t Transformer, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		workers:     workers,
	}
}

// CheckReadiness returns nil once the pipeline has transformed at least one
// record, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any records yet")
	}
	return nil
}

// Run executes one complete batch. Per-field degradations are absorbed into
// counters; only the extract and load barriers can fail the run.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := clock.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	rawTickets, err := p.extractor.Extract(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("extract tickets: %w", err)
	}
	p.metrics.TicketsRead.Add(float64(len(rawTickets)))
	p.logger.Info("tickets extracted", "count", len(rawTickets), "workers", p.workers)

	results, err := p.transformAll(ctx, rawTickets)
	if err != nil {
		return Summary{}, err
	}
	p.ready.Store(true)

	summary := Summary{TicketsIn: len(rawTickets)}
	clean := make([]domain.CleanTicket, 0, len(results))
	for _, r := range results {
		p.tally(&summary, r.flags)
		if r.flags.CommentFiltered {
			continue
		}
		clean = append(clean, r.ticket)
	}

	// Parallel transform order is unspecified; fix it before the write
	// barrier so identical inputs produce byte-identical output.
	sort.Slice(clean, func(i, j int) bool {
		return clean[i].TicketID < clean[j].TicketID
	})

	for _, loader := range p.loaders {
		if err := loader.Load(ctx, clean); err != nil {
			return Summary{}, fmt.Errorf("load clean tickets: %w", err)
		}
	}

	summary.TicketsOut = len(clean)
	p.metrics.TicketsExported.Add(float64(len(clean)))
	p.metrics.RunDuration.Observe(clock.Since(start).Seconds())

	return summary, nil
}

type transformResult struct {
	ticket domain.CleanTicket
	flags  domain.RecordFlags
}

// transformAll fans the pure per-record transform out across p.workers
// goroutines. Results land in their input slot, so the stage preserves
// input order regardless of scheduling.
func (p *Pipeline) transformAll(ctx context.Context, rawTickets []domain.RawTicket) ([]transformResult, error) {
	results := make([]transformResult, len(rawTickets))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				ticket, flags := p.transformer.Transform(ctx, rawTickets[i])
				results[i] = transformResult{ticket: ticket, flags: flags}
			}
		}()
	}

	var cancelled error
	for i := range rawTickets {
		if ctx.Err() != nil {
			cancelled = ctx.Err()
			break
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if cancelled != nil {
		return nil, fmt.Errorf("transform interrupted: %w", cancelled)
	}
	return results, nil
}

func (p *Pipeline) tally(summary *Summary, flags domain.RecordFlags) {
	if flags.CommentFiltered {
		summary.CommentsFiltered++
		p.metrics.CommentsFiltered.Inc()
	}
	if flags.LatitudeImputed {
		summary.ImputedLatitudes++
		p.metrics.ImputedAxes.WithLabelValues("latitude").Inc()
	}
	if flags.LongitudeImputed {
		summary.ImputedLongitudes++
		p.metrics.ImputedAxes.WithLabelValues("longitude").Inc()
	}
	if flags.CoordinatesMissing {
		summary.NullCoordinateRows++
		p.metrics.NullCoordinateRows.Inc()
	}
	if flags.TimestampInvalid {
		summary.InvalidTimestamps++
		p.metrics.ParseFailures.WithLabelValues("timestamp").Inc()
	}
	if flags.LastActivityInvalid {
		p.metrics.ParseFailures.WithLabelValues("last_activity").Inc()
	}
}
