package main

import (
	"flag"
	"fmt"

	"github.com/catchbasin/flowroute/routing"
)

func newEngine() *routing.Engine {
	return routing.New(stubOpener{})
}

func runFillPits(args []string) error {
	fs := flag.NewFlagSet("fill_pits", flag.ExitOnError)
	dem := fs.String("dem", "", "input DEM raster path")
	band := fs.Int("band", 1, "DEM band index")
	target := fs.String("target", "", "output filled-DEM path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().FillPits(*dem, *band, *target)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("fill_pits: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runFlowDirD8(args []string) error {
	fs := flag.NewFlagSet("flow_dir_d8", flag.ExitOnError)
	dem := fs.String("dem", "", "input filled-DEM raster path")
	band := fs.Int("band", 1, "DEM band index")
	target := fs.String("target", "", "output D8 direction path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().FlowDirD8(*dem, *band, *target)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("flow_dir_d8: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runFlowDirMFD(args []string) error {
	fs := flag.NewFlagSet("flow_dir_mfd", flag.ExitOnError)
	dem := fs.String("dem", "", "input filled-DEM raster path")
	band := fs.Int("band", 1, "DEM band index")
	target := fs.String("target", "", "output MFD direction path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().FlowDirMFD(*dem, *band, *target)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("flow_dir_mfd: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runFlowAccumulationD8(args []string) error {
	fs := flag.NewFlagSet("flow_accumulation_d8", flag.ExitOnError)
	dir := fs.String("dir", "", "input D8 direction raster path")
	band := fs.Int("band", 1, "direction band index")
	target := fs.String("target", "", "output accumulation path")
	weight := fs.String("weight", "", "optional weight raster path")
	weightBand := fs.Int("weight_band", 1, "weight band index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().FlowAccumulationD8(*dir, *band, *target, *weight, *weightBand)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("flow_accumulation_d8: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runFlowAccumulationMFD(args []string) error {
	fs := flag.NewFlagSet("flow_accumulation_mfd", flag.ExitOnError)
	dir := fs.String("dir", "", "input MFD direction raster path")
	band := fs.Int("band", 1, "direction band index")
	target := fs.String("target", "", "output accumulation path")
	weight := fs.String("weight", "", "optional weight raster path")
	weightBand := fs.Int("weight_band", 1, "weight band index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().FlowAccumulationMFD(*dir, *band, *target, *weight, *weightBand)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("flow_accumulation_mfd: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runDistanceToChannelD8(args []string) error {
	fs := flag.NewFlagSet("distance_to_channel_d8", flag.ExitOnError)
	dir := fs.String("dir", "", "input D8 direction raster path")
	band := fs.Int("band", 1, "direction band index")
	channel := fs.String("channel", "", "channel mask raster path")
	channelBand := fs.Int("channel_band", 1, "channel mask band index")
	target := fs.String("target", "", "output distance path")
	weight := fs.String("weight", "", "optional weight raster path")
	weightBand := fs.Int("weight_band", 1, "weight band index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().DistanceToChannelD8(*dir, *band, *channel, *channelBand, *target, *weight, *weightBand)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("distance_to_channel_d8: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runDistanceToChannelMFD(args []string) error {
	fs := flag.NewFlagSet("distance_to_channel_mfd", flag.ExitOnError)
	dir := fs.String("dir", "", "input MFD direction raster path")
	band := fs.Int("band", 1, "direction band index")
	channel := fs.String("channel", "", "channel mask raster path")
	channelBand := fs.Int("channel_band", 1, "channel mask band index")
	target := fs.String("target", "", "output distance path")
	weight := fs.String("weight", "", "optional weight raster path")
	weightBand := fs.Int("weight_band", 1, "weight band index")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := newEngine().DistanceToChannelMFD(*dir, *band, *channel, *channelBand, *target, *weight, *weightBand)
	if err != nil {
		return err
	}
	defer r.Close()
	fmt.Printf("distance_to_channel_mfd: wrote %s (%dx%d)\n", *target, r.Width(), r.Height())
	return nil
}

func runDelineateWatersheds(args []string) error {
	fs := flag.NewFlagSet("delineate_watersheds", flag.ExitOnError)
	dir := fs.String("dir", "", "input D8 direction raster path")
	band := fs.Int("band", 1, "direction band index")
	outflows := fs.String("outflows", "", "outflow point vector path")
	target := fs.String("target", "", "output watershed vector path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := newEngine().DelineateWatersheds(*dir, *band, *outflows, *target)
	if err != nil {
		return err
	}
	defer v.Close()
	fmt.Printf("delineate_watersheds: wrote %s\n", *target)
	return nil
}
