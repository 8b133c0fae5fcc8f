package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestbrook/genstudio/internal/adapter/observability"
)

func TestResolveLogFormat(t *testing.T) {
	tests := []struct {
		name        string
		configured  string
		interactive bool
		want        observability.LogFormat
	}{
		{"unset on a terminal", "", true, observability.LogFormatHuman},
		{"unset piped", "", false, observability.LogFormatJSON},
		{"explicit human wins over piped output", "human", false, observability.LogFormatHuman},
		{"explicit json wins over a terminal", "json", true, observability.LogFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLogFormat(tt.configured, tt.interactive))
		})
	}
}

func TestResolveLogFormat_PipedLogsAreJSONLines(t *testing.T) {
	var buf bytes.Buffer
	format := resolveLogFormat("", false)
	logger := observability.NewCallLogger(&buf, observability.LogLevelInfo, format)

	logger.LogInfo("starting up")

	var record map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "starting up", record["message"])
}
