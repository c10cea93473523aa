package logging

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug": DEBUG,
		"INFO":  INFO,
		"Warn":  WARN,
		"error": ERROR,
		"fatal": FATAL,
		"bogus": INFO,
		"":      INFO,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(input))
		})
	}
}

func TestTextFormatter_IncludesLevelAndMessage(t *testing.T) {
	f := &TextFormatter{}
	out := f.Format(WARN, "disk low", "")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "disk low")
}

func TestTextFormatter_IncludesSource(t *testing.T) {
	f := &TextFormatter{}
	out := f.Format(INFO, "rule loaded", "parser")
	assert.Contains(t, out, "[parser]")
}

func TestJSONFormatter_EscapesQuotes(t *testing.T) {
	f := &JSONFormatter{}
	out := f.Format(ERROR, `bad "selector"`, "")
	assert.Contains(t, out, `bad \"selector\"`)
}

func TestNewFormatter(t *testing.T) {
	_, isJSON := NewFormatter("json").(*JSONFormatter)
	assert.True(t, isJSON)

	_, isText := NewFormatter("text").(*TextFormatter)
	assert.True(t, isText)

	_, isDefaultText := NewFormatter("whatever").(*TextFormatter)
	assert.True(t, isDefaultText)
}

func TestInit_SetsGlobalLoggerAndRedirectsStdlibLog(t *testing.T) {
	dir := t.TempDir()
	require := assert.New(t)

	err := Init(dir, "debug", "text", true, 1, 2, 1, false)
	require.NoError(err)

	logger := GetLogger()
	require.NotNil(logger)
	require.Equal(DEBUG, logger.level)
	require.Equal(logger, log.Writer())
}
