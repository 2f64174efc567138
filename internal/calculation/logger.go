package calculation

// Logger is the logging surface used by the projection engine.
// The default is a no-op; the CLI installs a leveled stderr logger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// prefixed tags every message with the name of the run that produced it.
type prefixed struct {
	l      Logger
	prefix string
}

func withPrefix(l Logger, name string) Logger {
	if name == "" {
		return l
	}
	return prefixed{l: l, prefix: "[" + name + "] "}
}

// args prepends the prefix, which is printed through %s so a '%' in a run name stays literal.
func (p prefixed) args(args []any) []any { return append([]any{p.prefix}, args...) }

func (p prefixed) Debugf(format string, args ...any) { p.l.Debugf("%s"+format, p.args(args)...) }
func (p prefixed) Infof(format string, args ...any)  { p.l.Infof("%s"+format, p.args(args)...) }
func (p prefixed) Warnf(format string, args ...any)  { p.l.Warnf("%s"+format, p.args(args)...) }
func (p prefixed) Errorf(format string, args ...any) { p.l.Errorf("%s"+format, p.args(args)...) }
