package utils

import (
	"testing"

	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseTypeList(t *testing.T) {
	assert.Nil(t, ParseTypeList("", false))
	assert.Equal(t, []string{}, ParseTypeList("", true))
	assert.Equal(t, []string{"Rajdhani", "Duronto"}, ParseTypeList(" Rajdhani, Duronto,,Rajdhani ", true))
}

func TestParseFloatParam(t *testing.T) {
	v, err := ParseFloatParam("min_urgency", "", 0, 10)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseFloatParam("min_urgency", "7.5", 0, 10)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 7.5, *v)

	for _, raw := range []string{"abc", "-1", "10.01", "NaN", "Inf"} {
		_, err := ParseFloatParam("min_urgency", raw, 0, 10)
		assert.Error(t, err, raw)
	}
}

func TestParseIntParam(t *testing.T) {
	v, err := ParseIntParam("top", "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = ParseIntParam("top", "12", 5)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = ParseIntParam("top", "-3", 5)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, ParseLogLevel())
	assert.Equal(t, zapcore.DebugLevel, ParseLogLevel("", "debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLogLevel("loud", "warn"))
}

func TestConnectionStrings(t *testing.T) {
	cfg := config.Default()
	cfg.MQHost, cfg.MQUser, cfg.MQPassword = "mq", "guest", "secret"
	cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB = "db", "rail", "pw", "trains"

	assert.Equal(t, "amqp://guest:secret@mq:5672/", RabbitURL(cfg))
	assert.Equal(t, "host=db port=5432 user=rail password=pw dbname=trains sslmode=disable", PostgresDSN(cfg))
	assert.Equal(t, "redis:6379", NewRedisClient("").Options().Addr)
}
