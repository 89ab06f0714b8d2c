package probe

import (
	"context"

	"github.com/shariq818/latencymon/internal/domain"
)

// Prober performs exactly one timed request against a target and converts
// whatever happens into a ProbeOutcome. Implementations never retry and never
// return an error: transport failures are data, not exceptions.
type Prober interface {
	Probe(ctx context.Context, target domain.Target) domain.ProbeOutcome
}
