package utfconv

import "sync"

const CHUNK_SIZE = 4 * 1024

// chunkPool holds scratch buffers for stream conversions, so a Writer does
// not allocate per call.
var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, CHUNK_SIZE)
		return &b
	},
}
