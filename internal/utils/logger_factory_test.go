package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sweeptools/sweep/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		expectError        bool
	}{
		{
			name:               "structured_info_logger",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "console_debug_logger",
			requestedLogLevel:  utils.LogLevelDebug,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "structured_error_logger",
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               "unsupported_log_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               "unsupported_log_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("pretty"),
			expectError:        true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()
			createdLogger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, createdLogger)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, createdLogger)
		})
	}
}

func TestLoggerFactoryHonorsLevelThreshold(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	createdLogger, creationError := loggerFactory.CreateLogger(utils.LogLevelWarn, utils.LogFormatStructured)
	require.NoError(testInstance, creationError)

	require.False(testInstance, createdLogger.Core().Enabled(zapcore.DebugLevel))
	require.True(testInstance, createdLogger.Core().Enabled(zapcore.WarnLevel))
}
