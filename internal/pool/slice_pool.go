package pool

import "sync"

// maxPooledKeys caps the slices kept by the key slice pool.
const maxPooledKeys = 1 << 20

var keySlicePool = sync.Pool{
	New: func() any { return &[]uint64{} },
}

// GetKeySlice returns a pointer to an empty uint64 slice with at least the
// requested capacity. Append through the pointer so growth is kept:
//
//	keys := pool.GetKeySlice(1024)
//	defer pool.PutKeySlice(keys)
//	*keys = append(*keys, z)
func GetKeySlice(capacity int) *[]uint64 {
	ptr, _ := keySlicePool.Get().(*[]uint64)
	if cap(*ptr) < capacity {
		*ptr = make([]uint64, 0, capacity)
	}
	*ptr = (*ptr)[:0]

	return ptr
}

// PutKeySlice returns a slice obtained from GetKeySlice.
func PutKeySlice(ptr *[]uint64) {
	if ptr == nil || cap(*ptr) > maxPooledKeys {
		return
	}

	*ptr = (*ptr)[:0]
	keySlicePool.Put(ptr)
}
