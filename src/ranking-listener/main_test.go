package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleSnapshot(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := HandleSnapshot(zap.New(core).Sugar())

	urgency := 9.25
	body, err := json.Marshal(notify.Snapshot{
		SessionID:   "abc",
		TotalTrains: 12,
		Types:       []string{"Rajdhani"},
		Top:         []notify.RankedTrain{{Name: "Mumbai Rajdhani", Urgency: &urgency}},
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, handle(body))
	assert.Equal(t, 1, logs.FilterMessage("ranking published").Len())
	assert.Equal(t, 1, logs.FilterMessage("🚄 Mumbai Rajdhani | Urgency: 9.2").Len())

	assert.Error(t, handle([]byte("not json")))
}
