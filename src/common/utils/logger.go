package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sharedLogger *zap.SugaredLogger

// InitLogger builds the shared console logger. An empty or unparsable level
// falls back to LOG_LEVEL, then to info.
func InitLogger(level ...string) {
	if sharedLogger != nil {
		return
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	candidates := append(append([]string{}, level...), os.Getenv("LOG_LEVEL"))
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		ParseLogLevel(candidates...),
	)

	logger := zap.New(core, zap.AddCallerSkip(1))
	sharedLogger = logger.Sugar()
}

// ParseLogLevel returns the first level that parses, or info.
func ParseLogLevel(candidates ...string) zapcore.Level {
	for _, lvl := range candidates {
		if lvl == "" {
			continue
		}
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			return parsed
		}
	}
	return zapcore.InfoLevel
}

func GetLogger() *zap.SugaredLogger {
	if sharedLogger == nil {
		InitLogger()
	}
	return sharedLogger
}

func SyncLogger() {
	if sharedLogger != nil {
		_ = sharedLogger.Sync()
	}
}
