package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func sampleView(t *testing.T) ranking.View {
	ds := types.Dataset{
		Columns: []string{types.ColTrainNumber, types.ColTrainName, types.ColTrainType, types.ColTrainPriority, types.ColUrgencyScore},
		Rows: []types.Record{
			{types.ColTrainNumber: int64(12002), types.ColTrainName: "Bhopal Shatabdi", types.ColTrainType: "Shatabdi", types.ColTrainPriority: int64(9), types.ColUrgencyScore: 3.5},
			{types.ColTrainNumber: int64(12951), types.ColTrainName: "Mumbai Rajdhani", types.ColTrainType: "Rajdhani", types.ColTrainPriority: int64(2), types.ColUrgencyScore: 8.0},
			{types.ColTrainNumber: int64(12259), types.ColTrainName: "Sealdah Duronto", types.ColTrainType: "Duronto", types.ColTrainPriority: nil, types.ColUrgencyScore: 8.0},
		},
	}
	view, err := ranking.Prepare(ds, ranking.ViewOptions{HighlightRows: 2})
	require.NoError(t, err)
	return view
}

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("IST", 19800))
	snap := NewSnapshot("abc", sampleView(t), now)

	assert.Equal(t, "abc", snap.SessionID)
	assert.Equal(t, 3, snap.TotalTrains)
	assert.Equal(t, []string{"Shatabdi", "Rajdhani", "Duronto"}, snap.Types)
	assert.Equal(t, time.UTC, snap.GeneratedAt.Location())

	require.Len(t, snap.Top, 2)
	assert.Equal(t, "Mumbai Rajdhani", snap.Top[0].Name)
	assert.Equal(t, "12951", snap.Top[0].Number)
	require.NotNil(t, snap.Top[0].Priority)
	assert.Equal(t, 2.0, *snap.Top[0].Priority)
	assert.Equal(t, "Sealdah Duronto", snap.Top[1].Name)
	assert.Nil(t, snap.Top[1].Priority)
}

func TestRabbitPublisher(t *testing.T) {
	ch := &fakeChannel{}
	pub, err := NewRabbitPublisher(ch, "rankings", zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, []string{"rankings"}, ch.declared)

	snap := NewSnapshot("abc", sampleView(t), time.Now())
	require.NoError(t, pub.PublishRanking(context.Background(), snap))

	require.Len(t, ch.published, 1)
	assert.Equal(t, "rankings", ch.keys[0])
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	decoded, err := DecodeSnapshot(ch.published[0].Body)
	require.NoError(t, err)
	assert.Equal(t, "abc", decoded.SessionID)
	assert.Equal(t, []string{
		"🚄 Mumbai Rajdhani | Urgency: 8.0",
		"🚄 Sealdah Duronto | Urgency: 8.0",
	}, decoded.Headlines())

	_, err = DecodeSnapshot([]byte("{"))
	assert.Error(t, err)
}

func TestRabbitPublisherErrors(t *testing.T) {
	_, err := NewRabbitPublisher(&fakeChannel{declareErr: errors.New("channel closed")}, "rankings", zap.NewNop().Sugar())
	assert.Error(t, err)

	pub, err := NewRabbitPublisher(&fakeChannel{publishErr: errors.New("channel closed")}, "rankings", zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Error(t, pub.PublishRanking(context.Background(), Snapshot{}))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishRanking(context.Background(), Snapshot{}))
}
