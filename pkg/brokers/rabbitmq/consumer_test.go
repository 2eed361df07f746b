package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDelivery records which settlement the worker chose.
type fakeDelivery struct {
	body        []byte
	redelivered bool

	acked     bool
	requeued  bool
	discarded bool
}

func (f *fakeDelivery) Body() []byte      { return f.body }
func (f *fakeDelivery) Redelivered() bool { return f.redelivered }
func (f *fakeDelivery) Ack() error        { f.acked = true; return nil }
func (f *fakeDelivery) Requeue() error    { f.requeued = true; return nil }
func (f *fakeDelivery) Discard() error    { f.discarded = true; return nil }

func newTestWorker(handler HandlerFunc) *Worker {
	return NewWorker(testLogger(), degradedClient(), "test.queue", handler)
}

func TestWorker_SuccessAcks(t *testing.T) {
	var got []byte

	w := newTestWorker(func(ctx context.Context, body []byte) error {
		got = body
		return nil
	})

	d := &fakeDelivery{body: []byte(`{"ok":true}`)}
	w.handle(context.Background(), d)

	require.Equal(t, []byte(`{"ok":true}`), got)
	require.True(t, d.acked)
	require.False(t, d.requeued)
	require.False(t, d.discarded)
}

func TestWorker_FirstFailureRequeues(t *testing.T) {
	w := newTestWorker(func(ctx context.Context, body []byte) error {
		return errors.New("downstream unavailable")
	})

	d := &fakeDelivery{body: []byte(`{}`)}
	w.handle(context.Background(), d)

	require.False(t, d.acked)
	require.True(t, d.requeued)
	require.False(t, d.discarded)
}

func TestWorker_RedeliveredFailureDiscards(t *testing.T) {
	w := newTestWorker(func(ctx context.Context, body []byte) error {
		return errors.New("downstream unavailable")
	})

	d := &fakeDelivery{body: []byte(`{}`), redelivered: true}
	w.handle(context.Background(), d)

	require.False(t, d.acked)
	require.False(t, d.requeued)
	require.True(t, d.discarded)
}

func TestWorker_BadMessageDiscardsWithoutRequeue(t *testing.T) {
	w := newTestWorker(func(ctx context.Context, body []byte) error {
		return fmt.Errorf("%w: invalid json", ErrBadMessage)
	})

	d := &fakeDelivery{body: []byte(`not json`)}
	w.handle(context.Background(), d)

	require.False(t, d.acked)
	require.False(t, d.requeued)
	require.True(t, d.discarded)
}

func TestWorker_RetryThenSuccess(t *testing.T) {
	attempts := 0

	w := newTestWorker(func(ctx context.Context, body []byte) error {
		attempts++
		if attempts == 1 {
			return errors.New("transient")
		}
		return nil
	})

	first := &fakeDelivery{body: []byte(`{}`)}
	w.handle(context.Background(), first)
	require.True(t, first.requeued)

	second := &fakeDelivery{body: []byte(`{}`), redelivered: true}
	w.handle(context.Background(), second)

	require.Equal(t, 2, attempts)
	require.True(t, second.acked)
	require.False(t, second.discarded)
}

func TestWorker_DegradedRunReturnsImmediately(t *testing.T) {
	w := newTestWorker(func(ctx context.Context, body []byte) error { return nil })

	require.NoError(t, w.Run(context.Background()))
}
