package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide logger, set by Setup.
	Logger *zap.Logger

	// Level controls Logger's verbosity after it has been built.
	Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Setup builds the production logger writing JSON to stderr.
func Setup(appName, appVersion string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = Level
	cfg.Sampling = nil
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// SetDebug switches Logger between debug and info level.
func SetDebug(debug bool) {
	if debug {
		Level.SetLevel(zapcore.DebugLevel)
		return
	}
	Level.SetLevel(zapcore.InfoLevel)
}
