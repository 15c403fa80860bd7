package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lcsouza2/fittude-data-repo/pkg"
)

const sentryFlushTimeout = 2 * time.Second

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes
// pending sentry events and closes the log file; the commands exit right
// after their work is done, so it has to run before they return.
func Setup(params LoggerSetupParams) (flush func()) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	sentryOn := params.SentryEnabled && setupSentry(params)

	out, logFile := logOutput(params.LogFileName, params.LogToStdout)
	logrus.SetOutput(out)

	return func() {
		if sentryOn {
			sentry.Flush(sentryFlushTimeout)
		}
		if logFile != nil {
			if err := logFile.Close(); err != nil {
				logrus.SetOutput(os.Stderr)
				logrus.Errorf("close log file: %s", err)
			}
		}
	}
}

func setupSentry(params LoggerSetupParams) bool {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return false
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Debugln("sentry hook installed")
	return true
}

// logOutput picks stdout, a rotated file, or both.
func logOutput(fileName string, toStdout bool) (io.Writer, *lumberjack.Logger) {
	if fileName == "" {
		return os.Stdout, nil
	}
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	logFile := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   50, // megabytes
		LocalTime: false,
		Compress:  true,
	}
	if toStdout {
		return pkg.NewCombinedWriter(os.Stdout, logFile), logFile
	}
	return logFile, logFile
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
