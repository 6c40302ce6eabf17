package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/airdesk/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "airdesk.log")
	log, err := New(config.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("flight_no", "AA1").Info("flight added")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"flight_no":"AA1"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNew_TextFormatter(t *testing.T) {
	log, err := New(config.LogConfig{Level: "warn", Format: "text", Output: "stderr"})
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
