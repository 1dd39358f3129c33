package database

import (
	"fmt"
	"time"

	"github.com/yukikurage/life-record-api/internal/logging"
	gormlogger "gorm.io/gorm/logger"
)

type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	logging.Info().Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}

// NewLogger routes gorm's logger through zerolog. SQL tracing only happens at debug.
func NewLogger(level string) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	switch level {
	case "debug", "trace":
		gormLevel = gormlogger.Info
	case "error":
		gormLevel = gormlogger.Error
	case "disabled":
		gormLevel = gormlogger.Silent
	}

	return gormlogger.New(zerologWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
	})
}
