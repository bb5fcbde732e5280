package pipeline

import (
	"context"

	"github.com/traffydata/ticket-etl/internal/domain"
)

// TicketTransformer implements Transformer on top of the pure domain
// transform, holding the shared read-only geography index.
type TicketTransformer struct {
	geo *domain.GeoIndex
}

// NewTransformer creates a TicketTransformer bound to a geography index.
func NewTransformer(geo *domain.GeoIndex) *TicketTransformer {
	return &TicketTransformer{geo: geo}
}

func (t *TicketTransformer) Transform(_ context.Context, raw domain.RawTicket) (domain.CleanTicket, domain.RecordFlags) {
	return domain.CleanRawTicket(raw, t.geo)
}
