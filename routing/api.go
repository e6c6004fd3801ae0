package routing

import (
	"github.com/catchbasin/flowroute/chandist"
	"github.com/catchbasin/flowroute/flowaccum"
	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/pitfill"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/watershed"
)

// FillPits raises every pit in the DEM at (demPath, demBand) to its
// pour-point height. targetPath seeds the scratch
// prefix the underlying pitfill.Fill writes its output under. The
// caller closes the returned raster.
func (e *Engine) FillPits(demPath string, demBand int, targetPath string, opts ...pitfill.Option) (*rasterio.ManagedRaster, error) {
	ds, dem, err := e.openBand(demPath, demBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dem.Close()

	opts = append([]pitfill.Option{pitfill.WithScratchPrefix(targetPath)}, opts...)
	return pitfill.Fill(dem, ds, dem.NoData(), opts...)
}

// FlowDirD8 computes single-flow-direction routing over the filled
// DEM at (demPath, demBand).
func (e *Engine) FlowDirD8(demPath string, demBand int, targetPath string, opts ...flowdir.Option) (*rasterio.ManagedRaster, error) {
	ds, dem, err := e.openBand(demPath, demBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dem.Close()

	opts = append([]flowdir.Option{flowdir.WithScratchPrefix(targetPath)}, opts...)
	return flowdir.D8(dem, ds, dem.NoData(), opts...)
}

// FlowDirMFD computes multiple-flow-direction routing over the filled
// DEM at (demPath, demBand).
func (e *Engine) FlowDirMFD(demPath string, demBand int, targetPath string, opts ...flowdir.Option) (*rasterio.ManagedRaster, error) {
	ds, dem, err := e.openBand(demPath, demBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dem.Close()

	opts = append([]flowdir.Option{flowdir.WithScratchPrefix(targetPath)}, opts...)
	return flowdir.MFD(dem, ds, dem.NoData(), opts...)
}

// FlowAccumulationD8 accumulates flow over a D8 direction raster at
// (dirPath, dirBand). weightPath may be empty,
// defaulting every pixel's own weight to 1.
func (e *Engine) FlowAccumulationD8(dirPath string, dirBand int, targetPath string, weightPath string, weightBand int, opts ...flowaccum.Option) (*rasterio.ManagedRaster, error) {
	if weightPath != "" {
		if err := validateRasterArg(weightPath, weightBand); err != nil {
			return nil, err
		}
	}
	ds, dir, err := e.openBand(dirPath, dirBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	weight, closeWeight, err := e.openOptionalWeight(weightPath, weightBand)
	if err != nil {
		return nil, err
	}
	defer closeWeight()

	opts = append([]flowaccum.Option{flowaccum.WithScratchPrefix(targetPath)}, opts...)
	return flowaccum.D8(dir, ds, flowdir.NoDataD8, weight, opts...)
}

// FlowAccumulationMFD accumulates flow over an MFD direction raster
// at (dirPath, dirBand).
func (e *Engine) FlowAccumulationMFD(dirPath string, dirBand int, targetPath string, weightPath string, weightBand int, opts ...flowaccum.Option) (*rasterio.ManagedRaster, error) {
	ds, dir, err := e.openBand(dirPath, dirBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	weight, closeWeight, err := e.openOptionalWeight(weightPath, weightBand)
	if err != nil {
		return nil, err
	}
	defer closeWeight()

	opts = append([]flowaccum.Option{flowaccum.WithScratchPrefix(targetPath)}, opts...)
	return flowaccum.MFD(dir, ds, flowdir.NoDataMFD, weight, opts...)
}

// DistanceToChannelD8 computes downstream distance-to-channel over a
// D8 direction raster at (dirPath, dirBand) given the channel mask at
// (channelPath, channelBand).
func (e *Engine) DistanceToChannelD8(dirPath string, dirBand int, channelPath string, channelBand int, targetPath string, weightPath string, weightBand int, opts ...chandist.Option) (*rasterio.ManagedRaster, error) {
	ds, dir, err := e.openBand(dirPath, dirBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	_, channel, err := e.openBand(channelPath, channelBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer channel.Close()

	weight, closeWeight, err := e.openOptionalWeight(weightPath, weightBand)
	if err != nil {
		return nil, err
	}
	defer closeWeight()

	opts = append([]chandist.Option{chandist.WithScratchPrefix(targetPath)}, opts...)
	return chandist.D8(dir, channel, ds, flowdir.NoDataD8, weight, opts...)
}

// DistanceToChannelMFD computes downstream distance-to-channel over
// an MFD direction raster at (dirPath, dirBand) given the channel mask
// at (channelPath, channelBand).
func (e *Engine) DistanceToChannelMFD(dirPath string, dirBand int, channelPath string, channelBand int, targetPath string, weightPath string, weightBand int, opts ...chandist.Option) (*rasterio.ManagedRaster, error) {
	ds, dir, err := e.openBand(dirPath, dirBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	_, channel, err := e.openBand(channelPath, channelBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer channel.Close()

	weight, closeWeight, err := e.openOptionalWeight(weightPath, weightBand)
	if err != nil {
		return nil, err
	}
	defer closeWeight()

	opts = append([]chandist.Option{chandist.WithScratchPrefix(targetPath)}, opts...)
	return chandist.MFD(dir, channel, ds, flowdir.NoDataMFD, weight, opts...)
}

// DelineateWatersheds delineates watershed fragments for the outflow
// points at outflowVectorPath against the D8 direction raster at
// (dirPath, dirBand). The caller closes the
// returned layer.
func (e *Engine) DelineateWatersheds(dirPath string, dirBand int, outflowVectorPath string, targetPath string, opts ...watershed.Option) (rasterio.VectorLayer, error) {
	ds, dir, err := e.openBand(dirPath, dirBand, rasterio.ModeRead)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	outflows, err := e.open.OpenVector(outflowVectorPath)
	if err != nil {
		return nil, err
	}
	defer outflows.Close()

	opts = append([]watershed.Option{watershed.WithScratchPrefix(targetPath)}, opts...)
	return watershed.Delineate(dir, outflows, ds, flowdir.NoDataD8, opts...)
}

// openOptionalWeight opens (path, band) as a weight raster if path is
// non-empty, returning a no-op closer when it is not.
func (e *Engine) openOptionalWeight(path string, band int) (*rasterio.ManagedRaster, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	_, mr, err := e.openBand(path, band, rasterio.ModeRead)
	if err != nil {
		return nil, nil, err
	}
	return mr, func() { mr.Close() }, nil
}
