package job

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	removed int
	calls   int
}

func (f *fakeStore) Sweep() int {
	f.calls++
	return f.removed
}

func TestExpirySweepJob(t *testing.T) {
	codes := &fakeStore{removed: 2}
	tokens := &fakeStore{}
	pending := &fakeStore{removed: 1}

	j := NewExpirySweepJob(codes, tokens, pending)
	require.Equal(t, "expiry_sweep", j.Name())
	require.NoError(t, j.Run(context.Background()))

	require.Equal(t, 1, codes.calls)
	require.Equal(t, 1, tokens.calls)
	require.Equal(t, 1, pending.calls)
}
