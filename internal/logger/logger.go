// Package logger builds the logrus logger shared by the CLI and the server.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the timestamp layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// New creates a text logger at levelStr writing to out and, when filePath is set, appending to that file.
// An unparseable level falls back to info. The returned close function releases the log file.
func New(levelStr, filePath string, out io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{out}
	closeFn := func() error { return nil }
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, file)
		closeFn = file.Close
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log, closeFn, nil
}
