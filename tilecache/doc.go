// Package tilecache implements a fixed-capacity LRU cache of raster
// blocks, keyed by block index.
//
// What:
//
//   - Cache holds up to Capacity blocks, evicting least-recently-used
//     entries on insertion once that capacity is exceeded.
//   - Get/Put never perform I/O; the cache only manages which block
//     buffers are resident and in what order they were last touched.
//   - Eviction returns the displaced (index, block) pairs in eviction
//     order so the owner (rasterio.ManagedRaster) can flush dirty
//     buffers or free clean ones.
//
// Why:
//
//   - Routing kernels perform near-random neighbour access around a
//     traversal frontier; a per-raster LRU of whole blocks with direct
//     indexing avoids both the cost of re-deriving block geometry per
//     pixel and the overhead of a general-purpose I/O library's own
//     (sequential-scan-tuned) cache.
//
// Complexity:
//
//   - Exists, Get, Put: O(1) amortised.
//
// See: rasterio.ManagedRaster, the sole intended caller.
package tilecache
