package log

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var Root = &logrus.Logger{
	Out:   os.Stderr,
	Level: logrus.TraceLevel,
	Hooks: make(logrus.LevelHooks),
	Formatter: &prefixed.TextFormatter{
		DisableColors: func() bool {
			term, ok := os.LookupEnv("TERM")
			return term == "" || !ok
		}(),
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	},
}

// SetLevel sets the level of Root by name, eg. "warn". Debug output
// of the children needs "debug" or "trace".
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Root.SetLevel(lvl)
	return nil
}

// ChildLogger logs to its parent with a fixed prefix. Its own level
// gates debug output per subsystem.
type ChildLogger struct {
	parent *logrus.Logger
	prefix string
	level  logrus.Level
}

func NewChildLogger(parent *logrus.Logger, prefix string, debug bool) *ChildLogger {
	lc := &ChildLogger{
		parent: parent,
		prefix: prefix,
	}
	lc.SetDebug(debug)
	return lc
}

func (l *ChildLogger) SetDebug(debug bool) {
	if debug {
		l.level = logrus.DebugLevel
	} else {
		l.level = logrus.InfoLevel
	}
}

func (l *ChildLogger) IsDebug() bool {
	return l.level >= logrus.DebugLevel
}

func (l *ChildLogger) shouldOutput(level logrus.Level) bool {
	return l.level >= level
}

// Entry returns a logrus entry carrying the prefix, for structured
// fields.
func (l *ChildLogger) Entry() *logrus.Entry {
	return l.parent.WithField("prefix", l.prefix)
}

func (l *ChildLogger) log(level logrus.Level, args ...interface{}) {
	if l.shouldOutput(level) {
		l.Entry().Log(level, args...)
	}
}

func (l *ChildLogger) logf(level logrus.Level, format string, args ...interface{}) {
	if l.shouldOutput(level) {
		l.Entry().Logf(level, format, args...)
	}
}

func (l *ChildLogger) Debug(args ...interface{})   { l.log(logrus.DebugLevel, args...) }
func (l *ChildLogger) Info(args ...interface{})    { l.log(logrus.InfoLevel, args...) }
func (l *ChildLogger) Warning(args ...interface{}) { l.log(logrus.WarnLevel, args...) }
func (l *ChildLogger) Error(args ...interface{})   { l.log(logrus.ErrorLevel, args...) }

func (l *ChildLogger) Debugf(format string, args ...interface{}) {
	l.logf(logrus.DebugLevel, format, args...)
}

func (l *ChildLogger) Infof(format string, args ...interface{}) {
	l.logf(logrus.InfoLevel, format, args...)
}

func (l *ChildLogger) Warningf(format string, args ...interface{}) {
	l.logf(logrus.WarnLevel, format, args...)
}

func (l *ChildLogger) Errorf(format string, args ...interface{}) {
	l.logf(logrus.ErrorLevel, format, args...)
}

// Children are the loggers of the subsystems. PTPIP logs packets and
// transactions, Data the data phases, Monitor the event relay.
type Children struct {
	PTPIP   *ChildLogger
	Data    *ChildLogger
	Monitor *ChildLogger
}

func PrepareChildren(parent *logrus.Logger, ptpip, data, monitor bool) *Children {
	return &Children{
		PTPIP:   NewChildLogger(parent, "ptpip", ptpip),
		Data:    NewChildLogger(parent, "data", data),
		Monitor: NewChildLogger(parent, "monitor", monitor),
	}
}

// Quiet returns children of Root without debug output.
func Quiet() *Children {
	return PrepareChildren(Root, false, false, false)
}

func HTTPLogHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			Root.WithField("prefix", "http").Infof("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		}()
		next.ServeHTTP(w, r)
	})
}
