package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func encoderConfig(level zapcore.Level) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		// Keys can be anything except the empty string.
		TimeKey:        "Time",
		LevelKey:       "Level",
		NameKey:        "Name",
		MessageKey:     "Message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if level == zap.DebugLevel {
		cfg.CallerKey = "Caller"
		cfg.StacktraceKey = "Stack"
	}
	return cfg
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

// GetLoggerInstance logs to stderr and, when logPath is set, to a rotated file.
// Stdout is left for command output.
func GetLoggerInstance(logPath string, level zapcore.Level) *zap.Logger {
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if logPath != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:  logPath,
			MaxSize:   50, // megabytes
			LocalTime: true,
			Compress:  true,
			MaxAge:    30,
		}))
	}
	return newLogger(zapcore.NewMultiWriteSyncer(sinks...), level)
}

// NewWriterLogger is used where log output has to be captured.
func NewWriterLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	return newLogger(zapcore.AddSync(w), level)
}

func newLogger(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig(level)),
		ws,
		level,
	)
	return zap.New(core, zap.AddCaller())
}
