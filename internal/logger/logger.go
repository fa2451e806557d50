package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
// format: "json" для production, "text" для локальной разработки.
func Init(level, format string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "text" {
		SetTextFormatter()
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// SetOutput перенаправляет вывод логгера, в тестах удобно писать в буфер.
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// WithFields запись с полями. Работает и до Init: тогда пишет в стандартный логгер logrus.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return get().WithFields(fields)
}

func get() *logrus.Logger {
	if Log == nil {
		return logrus.StandardLogger()
	}
	return Log
}
