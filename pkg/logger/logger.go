package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 5
	defaultMaxAgeDays = 30
)

// Logger форматирующий логгер поверх logrus.
// Пишет в stdout и, если указан файл, в файл с ротацией.
type Logger struct {
	entry *logrus.Entry
	file  io.Closer
}

// New создает логгер. Пустой filePath - только stdout.
func New(filePath string, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{entry: logrus.NewEntry(base)}

	if filePath == "" {
		base.SetOutput(os.Stdout)
		return l, nil
	}

	rotating := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}
	base.SetOutput(io.MultiWriter(os.Stdout, rotating))
	l.file = rotating

	return l, nil
}

// NewWriter создает логгер, пишущий в w (используется в тестах).
func NewWriter(w io.Writer, level logrus.Level) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return &Logger{entry: logrus.NewEntry(base)}
}

// NewNop создает логгер, отбрасывающий все записи.
func NewNop() *Logger {
	return NewWriter(io.Discard, logrus.PanicLevel)
}

// With возвращает логгер с дополнительным полем (например, request_id).
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal логирует и завершает процесс.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл логов, если он был открыт.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
