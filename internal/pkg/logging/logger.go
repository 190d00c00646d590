package logging

import (
	"go.uber.org/zap"
)

// Logger is the global structured logger. InitLogger must be called
// once at startup before it is used.
var Logger *zap.Logger

// InitLogger configures the global logger. Production mode emits JSON,
// otherwise a human-readable development config is used.
func InitLogger(production bool) error {
	var err error
	if production {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(Logger)
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
