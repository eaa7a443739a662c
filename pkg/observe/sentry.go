package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth = 9
	_sentryClientTimeout = 5 * time.Second
)

// SentryHook is an io.Writer fed to the logger as an extra sink. It decodes
// each JSON log line and promotes error-level entries to Sentry events.
type SentryHook struct {
	appEnv  string
	appName string
}

func NewSentryHook(appEnv, appName, dsn string, isDebug bool) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry hook: no DSN")
	}

	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryClientTimeout

	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        transport,
	}); err != nil {
		return nil, errors.Wrap(err, "sentry hook: init")
	}

	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
	}, nil
}

func (h *SentryHook) Write(p []byte) (int, error) {
	var entry struct {
		Level      string `json:"level"`
		Message    string `json:"msg"`
		Error      string `json:"error"`
		CallerFile string `json:"caller_file"`
		CallerLine int    `json:"caller_line"`
		CallerFunc string `json:"caller_func"`
		Stack      string `json:"stack"`
	}

	if err := json.Unmarshal(p, &entry); err != nil {
		log.Println("sentry hook: cannot decode log line:", err)
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil || level < zapcore.ErrorLevel || entry.Message == "" {
		return len(p), nil
	}

	event := sentry.NewEvent()
	event.Level = mapLevel(level)
	event.Environment = h.appEnv
	event.Message = entry.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = entry.Error
	event.Extra["CallerFile"] = entry.CallerFile
	event.Extra["CallerLine"] = entry.CallerLine
	event.Extra["CallerFunc"] = entry.CallerFunc
	event.Extra["Stack"] = entry.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       entry.Message,
		Value:      entry.Error,
		Stacktrace: sentry.NewStacktrace(),
	})
	sentry.CaptureEvent(event)

	return len(p), nil
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}
