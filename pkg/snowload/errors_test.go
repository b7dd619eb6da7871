package snowload

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "invalid config",
			err:      ErrInvalidConfig,
			expected: ExitConfigError,
		},
		{
			name:     "wrapped invalid config",
			err:      fmt.Errorf("DataDir is required: %w", ErrInvalidConfig),
			expected: ExitConfigError,
		},
		{
			name:     "connection failed",
			err:      ErrConnectionFailed,
			expected: ExitConnectionError,
		},
		{
			name:     "approval denied",
			err:      fmt.Errorf("full refresh not approved: %w", ErrApprovalDenied),
			expected: ExitApprovalDenied,
		},
		{
			name:     "staging failed",
			err:      fmt.Errorf("%w: bucket unreachable", ErrStagingFailed),
			expected: ExitExecutionFailed,
		},
		{
			name:     "execution failed",
			err:      fmt.Errorf("statement failed: %w", ErrExecutionFailed),
			expected: ExitExecutionFailed,
		},
		{
			name:     "no create clause",
			err:      fmt.Errorf("schema file raw_movies.sql: %w", ErrNoCreateClause),
			expected: ExitExecutionFailed,
		},
		{
			name:     "ledger locked",
			err:      ErrLedgerLocked,
			expected: ExitLedgerLocked,
		},
		{
			name:     "connection refused string pattern",
			err:      errors.New("dial tcp: connection refused"),
			expected: ExitConnectionError,
		},
		{
			name:     "no such host string pattern",
			err:      errors.New("dial tcp: lookup xy12345.snowflakecomputing.com: no such host"),
			expected: ExitConnectionError,
		},
		{
			name:     "unclassified error",
			err:      errors.New("something odd happened"),
			expected: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeForError(tt.err))
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidConfig,
		ErrConnectionFailed,
		ErrApprovalDenied,
		ErrStagingFailed,
		ErrExecutionFailed,
		ErrLedgerLocked,
		ErrNoCreateClause,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
