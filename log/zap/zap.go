package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/mongosettings"
)

var _ mongosettings.Logger = ZapLogger{}

// ZapLogger forwards to a zap logger. A nil L discards everything.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f mongosettings.Fields) { z.log().Debug(msg, fields(f)...) }
func (z ZapLogger) Info(msg string, f mongosettings.Fields)  { z.log().Info(msg, fields(f)...) }
func (z ZapLogger) Warn(msg string, f mongosettings.Fields)  { z.log().Warn(msg, fields(f)...) }
func (z ZapLogger) Error(msg string, f mongosettings.Fields) { z.log().Error(msg, fields(f)...) }

func (z ZapLogger) log() *zap.Logger {
	if z.L == nil {
		return zap.NewNop()
	}
	return z.L
}

// fields keeps error values typed so zap renders them with NamedError.
func fields(f mongosettings.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		switch x := v.(type) {
		case error:
			out = append(out, zap.NamedError(k, x))
		case string:
			out = append(out, zap.String(k, x))
		case int:
			out = append(out, zap.Int(k, x))
		case bool:
			out = append(out, zap.Bool(k, x))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
