package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeliveries struct {
	ch  chan amqp.Delivery
	err error
}

func (f *fakeDeliveries) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.ch, f.err
}

func TestListenerHandlesUntilClosed(t *testing.T) {
	src := &fakeDeliveries{ch: make(chan amqp.Delivery, 3)}
	src.ch <- amqp.Delivery{Body: []byte("a")}
	src.ch <- amqp.Delivery{Body: []byte("bad")}
	src.ch <- amqp.Delivery{Body: []byte("b")}
	close(src.ch)

	var got []string
	handler := func(body []byte) error {
		got = append(got, string(body))
		if string(body) == "bad" {
			return errors.New("undecodable")
		}
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	l := NewListener(context.Background(), &wg, src, "rankings", "test", handler)
	require.NoError(t, l.Start())
	wg.Wait()

	assert.Equal(t, []string{"a", "bad", "b"}, got)
}

func TestListenerStopsOnContext(t *testing.T) {
	src := &fakeDeliveries{ch: make(chan amqp.Delivery)}
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	l := NewListener(ctx, &wg, src, "rankings", "test", func([]byte) error { return nil })

	done := make(chan error, 1)
	go func() { done <- l.Start() }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestListenerConsumeError(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	l := NewListener(context.Background(), &wg, &fakeDeliveries{err: errors.New("no channel")}, "rankings", "test", nil)
	assert.Error(t, l.Start())
	wg.Wait()
}
