// Package logger builds the service's zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const permission = 0664

type LogBuild struct {
	writer  io.Writer
	path    string
	level   string
	service string
}

// LogData is a built logger and the file it writes to, if any.
type LogData struct {
	Logger  zerolog.Logger
	LogFile *os.File
}

func New() *LogBuild {
	return &LogBuild{writer: os.Stdout, level: "info"}
}

// FromPath appends to a file instead of the writer.
func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

func (build *LogBuild) Level(level string) *LogBuild {
	build.level = level
	return build
}

func (build *LogBuild) Service(name string) *LogBuild {
	build.service = name
	return build
}

func (build *LogBuild) Make() (*LogData, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(build.level))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing log level %q", build.level)
	}

	logData := new(LogData)
	writer := build.writer
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, errors.Wrap(err, "opening log file")
		}
		writer = zerolog.SyncWriter(logData.LogFile)
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if build.service != "" {
		ctx = ctx.Str("service", build.service)
	}
	logData.Logger = ctx.Logger()

	return logData, nil
}

// Close releases the log file.
func (l *LogData) Close() error {
	if l.LogFile == nil {
		return nil
	}
	return l.LogFile.Close()
}
