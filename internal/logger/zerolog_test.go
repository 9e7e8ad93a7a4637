package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: DebugLevel},
		{input: "INFO", want: InfoLevel},
		{input: "", want: InfoLevel},
		{input: "warning", want: WarnLevel},
		{input: "error", want: ErrorLevel},
		{input: "loud", want: InfoLevel, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, DebugLevel)

	log.Info("Controller", "resize finished", map[string]interface{}{"width": 200})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Controller", entry["component"])
	assert.Equal(t, "resize finished", entry["message"])
	assert.EqualValues(t, 200, entry["width"])
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, InfoLevel)

	log.Error("Pipeline", errors.New("disk full"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, WarnLevel)

	log.Debug("GUI", "hidden", nil)
	log.Info("GUI", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warning("GUI", "shown", nil)
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	log.SetLevel(DebugLevel)
	log.Debug("GUI", "now visible", nil)
	assert.Contains(t, buf.String(), "now visible")
}
