package cmd

import (
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	dirFlagName                    = "dir"
	excludeFlagName                = "exclude"
	examineFlagName                = "file"
	excludeReFlagName              = "exclude-re"
	examineReFlagName              = "re"
	cargoArgFlagName               = "cargo-arg"
	cargoTestArgFlagName           = "cargo-test-arg"
	errorValueFlagName             = "error"
	timeoutMultiplierFlagName      = "timeout-multiplier"
	buildTimeoutMultiplierFlagName = "build-timeout-multiplier"
	minimumTestTimeoutFlagName     = "minimum-test-timeout"
	testToolFlagName               = "test-tool"
	noConfigFlagName               = "no-config"
	listFilesFlagName              = "list-files"
	listFlagName                   = "list"
	jobsFlagName                   = "jobs"
	logFileFlagName                = "log-file"
	verboseFlagName                = "verbose"
	formatFlagName                 = "format"

	defaultDir    = "."
	defaultFormat = "toml"

	envPrefix = "MUTANTS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ""
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultJobs = runtime.NumCPU()

var globalLogger *slog.Logger

// Tool settings come from flags and MUTANTS_* environment variables. The
// project's own options live in .cargo/mutants.toml and are not read here.
func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(dirFlagName, defaultDir)
	viper.SetDefault(jobsFlagName, defaultJobs)
	viper.SetDefault(formatFlagName, defaultFormat)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Without a log file, records are discarded so stdout and stderr only carry
// the listing and errors. Verbose logs at Debug, otherwise at log.level.
func configureLogger(logPath string, verbose bool) {
	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	var logWriter io.Writer = io.Discard

	if strings.TrimSpace(logPath) != "" {
		logWriter = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    viper.GetInt(logMaxSizeKey),
			MaxBackups: viper.GetInt(logMaxBackupsKey),
			MaxAge:     viper.GetInt(logMaxAgeKey),
			Compress:   viper.GetBool(logCompressKey),
		}
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
