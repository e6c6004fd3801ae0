package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/routing"
)

func TestRunFillPits_NoBackendConfigured(t *testing.T) {
	err := runFillPits([]string{"-dem", "dem.tif", "-band", "1", "-target", "out"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoBackend) || errors.Is(err, routing.ErrInvalidArgument))
}

func TestRunFillPits_MissingDemIsInvalidArgument(t *testing.T) {
	err := runFillPits([]string{"-target", "out"})
	require.ErrorIs(t, err, routing.ErrInvalidArgument)
}

func TestRunDelineateWatersheds_NoBackendConfigured(t *testing.T) {
	err := runDelineateWatersheds([]string{"-dir", "dir.tif", "-outflows", "outflows.shp", "-target", "out"})
	require.ErrorIs(t, err, ErrNoBackend)
}

func TestCommands_EveryDispatchedSubcommandIsRegistered(t *testing.T) {
	for _, name := range subcommandNames {
		_, ok := commands[name]
		require.True(t, ok, "subcommand %s missing from dispatch table", name)
	}
	require.Len(t, commands, len(subcommandNames))
}
