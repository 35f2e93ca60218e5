package arcball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedMenu(t *testing.T) (*Menu, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	m := newTestMenu(t)
	m.SetLogger(zap.New(core))
	return m, logs
}

func TestDebugStatsLoggedPerInterval(t *testing.T) {
	m, logs := observedMenu(t)
	m.SetDebugMode(true)
	require.True(t, m.DebugMode())

	for i := 0; i < debugLogInterval-1; i++ {
		m.Update(nominalMs)
	}
	assert.Zero(t, logs.FilterMessage("frame stats").Len())

	m.Update(nominalMs)
	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, debugLogInterval, fields["frames"])
	assert.Equal(t, "idle", fields["phase"])
	assert.Zero(t, m.stats.frames, "stats reset after logging")
}

func TestDebugModeOffLogsNothing(t *testing.T) {
	m, logs := observedMenu(t)
	for i := 0; i < 2*debugLogInterval; i++ {
		m.Update(nominalMs)
	}
	assert.Zero(t, logs.FilterMessage("frame stats").Len())
	assert.Zero(t, m.stats.frames)
}

func TestMenuLogsSelection(t *testing.T) {
	m, logs := observedMenu(t)
	m.Update(nominalMs)

	entries := logs.FilterMessage("active item changed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, m.ActiveIndex(), entries[0].ContextMap()["index"])
}

func TestSetLoggerNil(t *testing.T) {
	m := newTestMenu(t)
	m.SetLogger(nil)
	m.SetDebugMode(true)
	for i := 0; i < debugLogInterval; i++ {
		m.Update(nominalMs)
	}
}
