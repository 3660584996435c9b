// Package disk provides access to a fixed-size block-addressed store
// persisted to a single host file.
package disk

import (
	"github.com/bfslab/basicnfs/common"
)

// Block is a common.BlockSize-byte buffer.
type Block = []byte

// Disk is a random-access store of common.NumBlocks equally sized blocks.
//
// The backing store is treated as infallible media: any I/O failure or
// out-of-range access panics, since a partial write would leave the
// upper layers with invariants they cannot repair.
type Disk interface {
	// Read returns a copy of block a.
	Read(a common.Bnum) Block

	// Write persists v as block a. The write is durable when it returns.
	Write(a common.Bnum, v Block)

	// Size reports how big the disk is, in blocks.
	Size() uint64

	// Close releases the backing store and makes the disk unusable.
	Close()
}
