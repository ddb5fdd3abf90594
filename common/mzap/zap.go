package mzap

import (
	"github.com/LerianStudio/mdispatch/common/mlog"
	"go.uber.org/zap"
)

// ZapWithTraceLogger is a zap.SugaredLogger-backed implementation of
// mlog.Logger. The name is kept from the teacher's otelzap-bridged
// logger; trace correlation here comes from WithFields carrying the
// correlation ID and span attributes set by the caller, not from an
// otel log bridge.
type ZapWithTraceLogger struct {
	Logger *zap.SugaredLogger
}

func (l *ZapWithTraceLogger) Info(args ...any)                 { l.Logger.Info(args...) }
func (l *ZapWithTraceLogger) Infof(format string, args ...any) { l.Logger.Infof(format, args...) }
func (l *ZapWithTraceLogger) Infoln(args ...any)               { l.Logger.Infoln(args...) }
func (l *ZapWithTraceLogger) Error(args ...any)                { l.Logger.Error(args...) }
func (l *ZapWithTraceLogger) Errorf(format string, args ...any) { l.Logger.Errorf(format, args...) }
func (l *ZapWithTraceLogger) Errorln(args ...any)              { l.Logger.Errorln(args...) }
func (l *ZapWithTraceLogger) Warn(args ...any)                 { l.Logger.Warn(args...) }
func (l *ZapWithTraceLogger) Warnf(format string, args ...any) { l.Logger.Warnf(format, args...) }
func (l *ZapWithTraceLogger) Warnln(args ...any)               { l.Logger.Warnln(args...) }
func (l *ZapWithTraceLogger) Debug(args ...any)                { l.Logger.Debug(args...) }
func (l *ZapWithTraceLogger) Debugf(format string, args ...any) { l.Logger.Debugf(format, args...) }
func (l *ZapWithTraceLogger) Debugln(args ...any)              { l.Logger.Debugln(args...) }
func (l *ZapWithTraceLogger) Fatal(args ...any)                { l.Logger.Fatal(args...) }
func (l *ZapWithTraceLogger) Fatalf(format string, args ...any) { l.Logger.Fatalf(format, args...) }
func (l *ZapWithTraceLogger) Fatalln(args ...any)              { l.Logger.Fatalln(args...) }

// Sync flushes any buffered log entries.
func (l *ZapWithTraceLogger) Sync() error { return l.Logger.Sync() }

// WithFields adds structured context to the logger. It returns a new
// logger and leaves the original unchanged.
//
//nolint:ireturn
func (l *ZapWithTraceLogger) WithFields(fields ...any) mlog.Logger {
	return &ZapWithTraceLogger{Logger: l.Logger.With(fields...)}
}
