package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(&filteringHandler{
		underlying: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestFilteringHandlerDropsUnknownSections(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.Debug("no section")
	logger.Debug("unknown section", "section", "backend")
	assert.Empty(t, buf.String())

	logger.Debug("known section", "section", "logic.approve")
	assert.Contains(t, buf.String(), "known section")
}

func TestFilteringHandlerKeepsWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	newTestLogger(buf).Warn("something odd")
	assert.Contains(t, buf.String(), "something odd")
}

func TestFilteringHandlerWithSection(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf).With("section", "scenario")
	logger.Debug("loading")
	assert.Contains(t, buf.String(), "loading")
	assert.Contains(t, buf.String(), "section=scenario")
}

func TestFilteringHandlerWithUnknownSection(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf).With("section", "backend")
	logger.Debug("dropped")
	assert.Empty(t, buf.String())

	logger.Debug("kept", "section", "logic")
	assert.Contains(t, buf.String(), "kept")
}
