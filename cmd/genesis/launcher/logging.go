package launcher

import (
	"io"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const sentryTimeout = 5 * time.Second

// newLogger builds the command logger. Chain specs go to stdout, so logs go to w.
func newLogger(cfg LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	if cfg.Verbosity < int(logrus.PanicLevel) || cfg.Verbosity > int(logrus.TraceLevel) {
		return nil, errors.Errorf("log verbosity %d out of range [%d, %d]",
			cfg.Verbosity, logrus.PanicLevel, logrus.TraceLevel)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.Level(cfg.Verbosity))

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			FullTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, errors.Wrap(err, "sentry hook")
		}
		hook.Timeout = sentryTimeout
		logger.AddHook(hook)
	}
	return logger, nil
}
