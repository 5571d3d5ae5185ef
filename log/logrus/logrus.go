package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/mongosettings"
)

var _ mongosettings.Logger = LogrusLogger{}

// LogrusLogger forwards to a logrus entry. Error values are attached under
// logrus.ErrorKey so formatters and hooks treat them as the entry's error.
type LogrusLogger struct{ E *logrus.Entry }

// New wraps l; a nil l uses logrus.StandardLogger().
func New(l *logrus.Logger) LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return LogrusLogger{E: logrus.NewEntry(l)}
}

func (l LogrusLogger) Debug(msg string, f mongosettings.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f mongosettings.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f mongosettings.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f mongosettings.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f mongosettings.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out[logrus.ErrorKey] = err
			continue
		}
		out[k] = v
	}
	return l.E.WithFields(out)
}
