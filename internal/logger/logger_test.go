package logger

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerService_NoLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())

	assert.NotNil(t, service)
	assert.Nil(t, service.GetApplication())

	// Must not panic without an application.
	service.Shutdown()
}

func TestGetApplication_NilService(t *testing.T) {
	var service *LoggerService
	assert.Nil(t, service.GetApplication())
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	logger := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	cfg.Logging.Level = "nonsense"
	logger = NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}

	for level, want := range tests {
		assert.Equal(t, int(want), GetPgxTraceLogLevel(level), level.String())
	}
}

func TestWithTraceContext_NilTxn(t *testing.T) {
	base := zerolog.Nop()
	logger := WithTraceContext(base, nil)
	assert.Equal(t, base.GetLevel(), logger.GetLevel())
}
