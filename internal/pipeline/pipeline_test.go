package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traffydata/ticket-etl/internal/domain"
	"github.com/traffydata/ticket-etl/internal/observability"
	"github.com/traffydata/ticket-etl/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	tickets []domain.RawTicket
	err     error
}

func (m *mockExtractor) Extract(_ context.Context) ([]domain.RawTicket, error) {
	return m.tickets, m.err
}

type mockLoader struct {
	mu     sync.Mutex
	loaded [][]domain.CleanTicket
	err    error
}

func (m *mockLoader) Load(_ context.Context, tickets []domain.CleanTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	batch := make([]domain.CleanTicket, len(tickets))
	copy(batch, tickets)
	m.loaded = append(m.loaded, batch)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGeoIndex() *domain.GeoIndex {
	geo := domain.NewGeoIndex()
	geo.Add("Pathum Wan", domain.GeoPoint{Latitude: 13.75, Longitude: 100.52})
	geo.Add("Bangkok Noi", domain.GeoPoint{Latitude: 13.7713, Longitude: 100.4755})
	return geo
}

func newPipeline(e pipeline.Extractor, loaders []pipeline.Loader) *pipeline.Pipeline {
	transformer := pipeline.NewTransformer(testGeoIndex())
	return pipeline.New(e, transformer, loaders, discardLogger(), observability.NewMetricsForTesting(), 2)
}

// --- tests ---

func TestRun_EndToEnd(t *testing.T) {
	extractor := &mockExtractor{tickets: []domain.RawTicket{
		{
			TicketID:  "T-002",
			Comment:   "  test issue  \n",
			Coords:    "[13.7,100.5]",
			District:  "Pathum Wan",
			Timestamp: "2023-01-15 08:00:00+07:00",
		},
		{
			TicketID: "T-001",
			Comment:  "ไฟถนนดับทั้งซอย",
			Coords:   "",
			District: "Bangkok Noi",
		},
		{
			TicketID: "T-003",
			Comment:  "ok", // excluded by the comment-length filter
			Coords:   "[13.7,100.5]",
			District: "Pathum Wan",
		},
		{
			TicketID: "T-004",
			Comment:  "no location at all",
			Coords:   "garbage",
			District: "Chiang Mai",
		},
	}}
	loader := &mockLoader{}

	p := newPipeline(extractor, []pipeline.Loader{loader})
	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TicketsIn)
	assert.Equal(t, 3, summary.TicketsOut)
	assert.Equal(t, 1, summary.CommentsFiltered)
	assert.Equal(t, 1, summary.NullCoordinateRows)
	assert.Equal(t, 1, summary.ImputedLatitudes)
	assert.Equal(t, 1, summary.ImputedLongitudes)
	assert.Equal(t, 3, summary.InvalidTimestamps) // only T-002 carries a parseable timestamp

	require.Len(t, loader.loaded, 1)
	batch := loader.loaded[0]
	require.Len(t, batch, 3)

	// Output order is fixed by ticket_id regardless of input order.
	assert.Equal(t, "T-001", batch[0].TicketID)
	assert.Equal(t, "T-002", batch[1].TicketID)
	assert.Equal(t, "T-004", batch[2].TicketID)

	// T-001 took both axes from the reference.
	require.NotNil(t, batch[0].FinalLatitude)
	assert.Equal(t, 13.7713, *batch[0].FinalLatitude)

	// T-002 kept its own coordinates.
	require.NotNil(t, batch[1].FinalLatitude)
	assert.Equal(t, 13.7, *batch[1].FinalLatitude)
	assert.Equal(t, "test issue", batch[1].CleanComment)
	require.NotNil(t, batch[1].TimestampDt)

	// T-004 is retained with nil coordinates, not dropped.
	assert.Nil(t, batch[2].FinalLatitude)
	assert.Nil(t, batch[2].FinalLongitude)
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	pipeline.SetClock(clockwork.NewFakeClock())
	t.Cleanup(func() { pipeline.SetClock(nil) })

	tickets := []domain.RawTicket{
		{TicketID: "T-009", Comment: "comment nine", District: "Pathum Wan"},
		{TicketID: "T-001", Comment: "comment one", District: "Pathum Wan"},
		{TicketID: "T-005", Comment: "comment five", District: "Pathum Wan"},
	}

	run := func() []domain.CleanTicket {
		loader := &mockLoader{}
		p := newPipeline(&mockExtractor{tickets: tickets}, []pipeline.Loader{loader})
		_, err := p.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, loader.loaded, 1)
		return loader.loaded[0]
	}

	assert.Equal(t, run(), run())
}

func TestRun_ExtractorFailureIsFatal(t *testing.T) {
	extractor := &mockExtractor{err: errors.New("no such file")}
	loader := &mockLoader{}

	p := newPipeline(extractor, []pipeline.Loader{loader})
	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract tickets")
	assert.Empty(t, loader.loaded)
}

func TestRun_LoaderFailureIsFatal(t *testing.T) {
	extractor := &mockExtractor{tickets: []domain.RawTicket{
		{TicketID: "T-001", Comment: "long enough", District: "Pathum Wan"},
	}}
	loader := &mockLoader{err: errors.New("disk full")}

	p := newPipeline(extractor, []pipeline.Loader{loader})
	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load clean tickets")
}

func TestRun_FansOutToAllLoaders(t *testing.T) {
	extractor := &mockExtractor{tickets: []domain.RawTicket{
		{TicketID: "T-001", Comment: "long enough", District: "Pathum Wan"},
	}}
	first := &mockLoader{}
	second := &mockLoader{}

	p := newPipeline(extractor, []pipeline.Loader{first, second})
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, first.loaded, 1)
	require.Len(t, second.loaded, 1)
	assert.Equal(t, first.loaded[0], second.loaded[0])
}

func TestCheckReadiness(t *testing.T) {
	extractor := &mockExtractor{tickets: []domain.RawTicket{
		{TicketID: "T-001", Comment: "long enough", District: "Pathum Wan"},
	}}
	p := newPipeline(extractor, []pipeline.Loader{&mockLoader{}})

	require.Error(t, p.CheckReadiness(context.Background()))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestRun_CancelledContext(t *testing.T) {
	tickets := make([]domain.RawTicket, 100)
	for i := range tickets {
		tickets[i] = domain.RawTicket{TicketID: "T", Comment: "long enough", District: "Pathum Wan"}
	}
	loader := &mockLoader{}
	p := newPipeline(&mockExtractor{tickets: tickets}, []pipeline.Loader{loader})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.Error(t, err)
	assert.Empty(t, loader.loaded)
}
