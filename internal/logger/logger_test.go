package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, hclog.Debug, ParseLevel("debug"))
	assert.Equal(t, hclog.Warn, ParseLevel(" WARN "))
	assert.Equal(t, hclog.Info, ParseLevel(""))
	assert.Equal(t, hclog.Info, ParseLevel("loud"))
}

func TestJSONOutputAndNamedLoggers(t *testing.T) {
	var buf bytes.Buffer
	ConfigureOutput("debug", "json", &buf)
	t.Cleanup(func() { Configure("info", "text") })

	Named("catalog").Info("genre created", "id", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "filmadmin.catalog", entry["@module"])
	assert.Equal(t, "genre created", entry["@message"])
	assert.Equal(t, float64(7), entry["id"])
}

func TestSetLevelAffectsDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	ConfigureOutput("info", "text", &buf)
	t.Cleanup(func() { Configure("info", "text") })

	sub := Named("service")
	sub.Debug("hidden")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	sub.Debug("shown")
	Debug("root shown")

	out := buf.String()
	assert.True(t, strings.Contains(out, "shown"))
	assert.Contains(t, out, "root shown")
	assert.NotContains(t, out, "hidden")
}
