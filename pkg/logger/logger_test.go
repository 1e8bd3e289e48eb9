package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

func TestNew_NivelPorDefectoSegunEntorno(t *testing.T) {
	dev := logger.New(logger.Config{Env: "development", Service: "retail-ledger"})
	assert.Equal(t, zerolog.DebugLevel, dev.Zerolog().GetLevel())

	prod := logger.New(logger.Config{Env: "production", Service: "retail-ledger"})
	assert.Equal(t, zerolog.InfoLevel, prod.Zerolog().GetLevel())

	explicit := logger.New(logger.Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, explicit.Zerolog().GetLevel())
}

func TestComponent_HeredaElNivel(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "error"})
	sub := l.Component("snapshots")
	assert.Equal(t, zerolog.ErrorLevel, sub.Zerolog().GetLevel())
}
