package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			log, closeFn, err := New(tt.in, "", &bytes.Buffer{})
			require.NoError(t, err)
			defer func() { _ = closeFn() }()
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNew_WritesToOutAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "insights.log")

	log, closeFn, err := New("info", path, &buf)
	require.NoError(t, err)
	log.WithField("brand", "iloom").Info("dataset loaded")
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "dataset loaded")
	assert.Contains(t, buf.String(), "brand=iloom")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dataset loaded")
}

func TestNew_BadFile(t *testing.T) {
	_, _, err := New("info", filepath.Join(t.TempDir(), "missing", "x.log"), &bytes.Buffer{})
	assert.Error(t, err)
}
