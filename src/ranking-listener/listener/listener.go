package listener

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Deliveries is the subset of *amqp.Channel the listener consumes from.
type Deliveries interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Listener struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	channel  Deliveries
	queue    string
	consumer string
	handler  func([]byte) error
}

func NewListener(ctx context.Context, wg *sync.WaitGroup, channel Deliveries, queue, consumer string, handler func([]byte) error) *Listener {
	return &Listener{
		ctx:      ctx,
		wg:       wg,
		channel:  channel,
		queue:    queue,
		consumer: consumer,
		handler:  handler,
	}
}

// Start consumes until the context ends or the delivery channel closes. The
// caller must have added one to the WaitGroup.
func (l *Listener) Start() error {
	defer l.wg.Done()

	deliveries, err := l.channel.Consume(l.queue, l.consumer, false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-l.ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := l.handler(msg.Body); err != nil {
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}
