package logger

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
	level  atomic.Int32
}

func NewZerolog(writer io.Writer, level LogLevel) *ZerologAdapter {
	z := &ZerologAdapter{
		logger: zerolog.New(writer).
			With().
			Timestamp().
			Logger(),
	}
	z.SetLevel(level)
	return z
}

// NewConsoleLogger writes human readable lines, used in development mode.
func NewConsoleLogger(level LogLevel) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return NewZerolog(consoleWriter, level)
}

// NewJSONLogger writes one JSON object per line to stdout.
func NewJSONLogger(level LogLevel) *ZerologAdapter {
	return NewZerolog(os.Stdout, level)
}

// SetLevel may be called concurrently with logging, e.g. on config reload.
func (z *ZerologAdapter) SetLevel(level LogLevel) {
	z.level.Store(int32(level))
}

func (z *ZerologAdapter) Level() LogLevel {
	return LogLevel(z.level.Load())
}

func (z *ZerologAdapter) event(level LogLevel) *zerolog.Event {
	if level < z.Level() {
		return nil
	}
	return z.logger.WithLevel(level.zerolog())
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	z.emit(z.event(InfoLevel), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	z.emit(z.event(ErrorLevel), component, fields).Err(err).Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	z.emit(z.event(WarnLevel), component, fields).Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	z.emit(z.event(DebugLevel), component, fields).Msg(message)
}

// emit is nil-safe: zerolog treats a nil *Event as disabled.
func (z *ZerologAdapter) emit(event *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	event = event.Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
