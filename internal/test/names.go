package test

import (
	"fmt"
	"sync/atomic"
)

var storageSeq atomic.Int64

// StorageName returns a unique storage key for an uploaded file name.
// Keys sort in upload order, which keeps "latest file" assertions stable.
func StorageName(name string) string {
	return fmt.Sprintf("f%06d-%s", storageSeq.Add(1), name)
}
