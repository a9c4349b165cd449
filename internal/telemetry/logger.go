// Package telemetry is the structured-logging façade the evaluation
// context uses for its optional trace hook (spec.md §4.E "log(fn)").
package telemetry

import "go.uber.org/zap"

// Logger wraps a *zap.Logger so callers never need to import zap
// themselves just to pass jsonschema.Options{}.
type Logger struct {
	z *zap.Logger
}

// New wraps z. A nil z is replaced with a no-op logger so callers never
// need a nil check.
func New(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger { return New(nil) }

// Enabled reports whether debug-level tracing is active, letting callers
// skip building trace fields entirely on the hot path.
func (l *Logger) Enabled() bool {
	if l == nil || l.z == nil {
		return false
	}
	return l.z.Core().Enabled(zap.DebugLevel)
}

// KeywordEvaluated traces one keyword application.
func (l *Logger) KeywordEvaluated(evaluationPath, instanceLocation, keyword string, valid bool) {
	if !l.Enabled() {
		return
	}
	l.z.Debug("keyword evaluated",
		zap.String("evaluationPath", evaluationPath),
		zap.String("instanceLocation", instanceLocation),
		zap.String("keyword", keyword),
		zap.Bool("valid", valid),
	)
}

// RefResolved traces a $ref/$dynamicRef/$recursiveRef resolution.
func (l *Logger) RefResolved(kind, raw, resolved string) {
	if !l.Enabled() {
		return
	}
	l.z.Debug("reference resolved",
		zap.String("kind", kind),
		zap.String("raw", raw),
		zap.String("resolved", resolved),
	)
}

// CompileError traces a fatal compilation diagnostic.
func (l *Logger) CompileError(err error) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Error("schema compilation failed", zap.Error(err))
}
