package config

import (
	"io"

	log "github.com/go-pkgz/lgr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogs configures the global logger and returns the writer it logs to.
// With log_file set, logs go to a rotated file; otherwise to errOut.
// Debug adds [DEBUG] lines with caller info.
func SetupLogs(cfg *Config, errOut io.Writer) io.Writer {
	out := errOut
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
	}

	if cfg.Debug {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg)
		return out
	}
	log.Setup(log.Out(out), log.Err(out))
	return out
}
