// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/config"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/storage"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitRenderError indicates no renderer could produce the format
	ExitRenderError = 4
	// ExitNotFoundError indicates a file or preset was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "presets"
	Action  string // e.g. "delete"
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports invalid flags or arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error onto a process exit code.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, export.ErrRenderingUnavailable):
		return ExitRenderError
	case errors.Is(err, storage.ErrPresetNotFound),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, question.ErrUnsupportedFormat):
		return ExitNotFoundError
	default:
		return ExitGeneralError
	}
}
