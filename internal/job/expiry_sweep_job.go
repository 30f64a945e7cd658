package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Sweepable is any store that can drop its expired entries.
type Sweepable interface {
	Sweep() int
}

// ExpirySweepJob periodically purges the transient verification stores. Lazy
// purge on access already keeps expired entries invisible; the sweep bounds
// memory when the process sits idle.
type ExpirySweepJob struct {
	codes   Sweepable
	tokens  Sweepable
	pending Sweepable
}

func NewExpirySweepJob(codes, tokens, pending Sweepable) *ExpirySweepJob {
	return &ExpirySweepJob{codes: codes, tokens: tokens, pending: pending}
}

func (j *ExpirySweepJob) Name() string {
	return "expiry_sweep"
}

func (j *ExpirySweepJob) Run(ctx context.Context) error {
	removed := j.codes.Sweep() + j.tokens.Sweep() + j.pending.Sweep()
	if removed > 0 {
		logutil.GetLogger(ctx).Info("expired entries swept", zap.Int("removed", removed))
	}
	return nil
}
