package main

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notegen/internal/build"
	"git.home.luguber.info/inful/notegen/internal/vault"
)

func TestResolveLogLevel_Defaults_ToWarn(t *testing.T) {
	require.Equal(t, slog.LevelWarn, resolveLogLevel("", 0, 0))
}

func TestResolveLogLevel_Counters_AdjustLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, resolveLogLevel("", 1, 0))
	require.Equal(t, slog.LevelError, resolveLogLevel("", 0, 1))
	require.Equal(t, slog.LevelError+4, resolveLogLevel("", 0, 2))
}

func TestResolveLogLevel_Explicit_WinsOverCounters(t *testing.T) {
	require.Equal(t, slog.LevelInfo, resolveLogLevel("INFO", 3, 3))
	require.Equal(t, slog.LevelDebug, resolveLogLevel("DEBUG", 0, 2))
	require.Equal(t, slog.LevelError+4, resolveLogLevel("CRITICAL", 1, 0))
}

func TestExitCode_PreconditionFailures_ReturnTwo(t *testing.T) {
	require.Equal(t, 2, exitCode(fmt.Errorf("x: %w", build.ErrOutputDirExists)))
	require.Equal(t, 2, exitCode(fmt.Errorf("x: %w", vault.ErrOutputExists)))
	require.Equal(t, 2, exitCode(fmt.Errorf("x: %w", vault.ErrNotADirectory)))
}

func TestExitCode_OtherErrors_ReturnOne(t *testing.T) {
	require.Equal(t, 1, exitCode(errors.New("boom")))
	require.Equal(t, 1, exitCode(fmt.Errorf("x: %w", vault.ErrNoMatch)))
}
