// Package notify publishes ranking snapshots to downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RankedTrain struct {
	Number   string   `json:"train_number"`
	Name     string   `json:"train_name"`
	Type     string   `json:"train_type"`
	Urgency  *float64 `json:"urgency_score"`
	Priority *float64 `json:"train_priority"`
}

// Snapshot is the highlight of a freshly uploaded dataset.
type Snapshot struct {
	SessionID   string        `json:"session_id"`
	TotalTrains int           `json:"total_trains"`
	Types       []string      `json:"types"`
	Top         []RankedTrain `json:"top"`
	GeneratedAt time.Time     `json:"generated_at"`
}

func NewSnapshot(sessionID string, view ranking.View, now time.Time) Snapshot {
	top := make([]RankedTrain, 0, view.Highlight.Len())
	for _, row := range view.Highlight.Rows {
		top = append(top, RankedTrain{
			Number:   row.Text(types.ColTrainNumber),
			Name:     row.Text(types.ColTrainName),
			Type:     row.Text(types.ColTrainType),
			Urgency:  optionalNumber(row, types.ColUrgencyScore),
			Priority: optionalNumber(row, types.ColTrainPriority),
		})
	}
	return Snapshot{
		SessionID:   sessionID,
		TotalTrains: view.Ranked.Len(),
		Types:       view.Types,
		Top:         top,
		GeneratedAt: now.UTC(),
	}
}

// DecodeSnapshot parses a published snapshot body.
func DecodeSnapshot(body []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode ranking snapshot: %w", err)
	}
	return snap, nil
}

// Headlines renders the top trains the same way the dashboard does.
func (s Snapshot) Headlines() []string {
	out := make([]string, 0, len(s.Top))
	for _, t := range s.Top {
		row := types.Record{types.ColTrainName: t.Name}
		if t.Urgency != nil {
			row[types.ColUrgencyScore] = *t.Urgency
		}
		out = append(out, ranking.Headline(row))
	}
	return out
}

func optionalNumber(row types.Record, col string) *float64 {
	if v, ok := row.Number(col); ok {
		return &v
	}
	return nil
}

type Publisher interface {
	PublishRanking(ctx context.Context, snap Snapshot) error
}

// NopPublisher discards snapshots. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRanking(context.Context, Snapshot) error { return nil }

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitPublisher struct {
	channel Channel
	queue   string
	logger  *zap.SugaredLogger
}

// NewRabbitPublisher declares queue on channel and returns a publisher for it.
func NewRabbitPublisher(channel Channel, queue string, logger *zap.SugaredLogger) (*RabbitPublisher, error) {
	if _, err := channel.QueueDeclare(
		queue,
		false,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &RabbitPublisher{channel: channel, queue: queue, logger: logger}, nil
}

func (p *RabbitPublisher) PublishRanking(ctx context.Context, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   snap.GeneratedAt,
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Warnw("error publishing message to RabbitMQ", "queue", p.queue, "error", err)
		return err
	}

	p.logger.Debugw("published ranking snapshot", "queue", p.queue, "session", snap.SessionID)
	return nil
}
