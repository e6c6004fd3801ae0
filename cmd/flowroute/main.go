package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	sub := os.Args[1]
	cmd, ok := commands[sub]
	if !ok {
		fmt.Fprintf(os.Stderr, "flowroute: unrecognized subcommand %q\n", sub)
		printUsage()
		os.Exit(2)
	}
	if err := cmd(os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "flowroute:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: flowroute <subcommand> [flags]")
	fmt.Fprintln(os.Stderr, "subcommands:")
	for _, name := range subcommandNames {
		fmt.Fprintln(os.Stderr, "  "+name)
	}
}

var subcommandNames = []string{
	"fill_pits",
	"flow_dir_d8",
	"flow_dir_mfd",
	"flow_accumulation_d8",
	"flow_accumulation_mfd",
	"distance_to_channel_d8",
	"distance_to_channel_mfd",
	"delineate_watersheds",
}

var commands = map[string]func(args []string) error{
	"fill_pits":               runFillPits,
	"flow_dir_d8":             runFlowDirD8,
	"flow_dir_mfd":            runFlowDirMFD,
	"flow_accumulation_d8":    runFlowAccumulationD8,
	"flow_accumulation_mfd":   runFlowAccumulationMFD,
	"distance_to_channel_d8":  runDistanceToChannelD8,
	"distance_to_channel_mfd": runDistanceToChannelMFD,
	"delineate_watersheds":    runDelineateWatersheds,
}
