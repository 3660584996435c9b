// Package alloc manages the block allocation bitmap stored in the
// superblock. Bit i set means block i is allocated.
package alloc

import (
	"fmt"

	"github.com/bfslab/basicnfs/common"
	"github.com/bfslab/basicnfs/disk"
	"github.com/bfslab/basicnfs/util"
)

type Alloc struct {
	d      disk.Disk
	bitmap disk.Block
}

// MkAlloc loads the allocation bitmap from the superblock of d.
func MkAlloc(d disk.Disk) *Alloc {
	a := &Alloc{
		d:      d,
		bitmap: d.Read(common.SuperBnum),
	}
	return a
}

func (a *Alloc) isSet(n common.Bnum) bool {
	return a.bitmap[n/8]&(1<<(n%8)) != 0
}

func (a *Alloc) setBit(n common.Bnum) {
	a.bitmap[n/8] = a.bitmap[n/8] | (1 << (n % 8))
}

func (a *Alloc) clearBit(n common.Bnum) {
	a.bitmap[n/8] = a.bitmap[n/8] & ^(byte(1) << (n % 8))
}

func (a *Alloc) persist() {
	a.d.Write(common.SuperBnum, a.bitmap)
}

// AllocNum grabs the lowest-numbered free block past the superblock and
// root, persists the bitmap, and returns its handle. It returns
// common.NullBnum when the disk is full.
func (a *Alloc) AllocNum() common.Bnum {
	for n := common.RootBnum + 1; n < common.NumBlocks; n++ {
		if !a.isSet(n) {
			a.setBit(n)
			a.persist()
			util.DPrintf(5, "AllocNum: %d\n", n)
			return n
		}
	}
	return common.NullBnum
}

// FreeNum returns block n to the free pool and persists the bitmap.
func (a *Alloc) FreeNum(n common.Bnum) {
	if n <= common.RootBnum || n >= common.NumBlocks {
		panic(fmt.Errorf("FreeNum: bad block %d", n))
	}
	if !a.isSet(n) {
		panic(fmt.Errorf("FreeNum: block %d is already free", n))
	}
	a.clearBit(n)
	a.persist()
	util.DPrintf(5, "FreeNum: %d\n", n)
}

// MarkUsed sets bit n without any free check and persists the bitmap.
// The fs uses it when formatting a fresh image.
func (a *Alloc) MarkUsed(n common.Bnum) {
	if n >= common.NumBlocks {
		panic(fmt.Errorf("MarkUsed: bad block %d", n))
	}
	a.setBit(n)
	a.persist()
}

func popCnt(b byte) uint64 {
	var count uint64
	for ; b != 0; b >>= 1 {
		count += uint64(b & 1)
	}
	return count
}

// NumFree reports how many blocks are unallocated.
func (a *Alloc) NumFree() uint64 {
	var used uint64
	for _, b := range a.bitmap {
		used += popCnt(b)
	}
	return common.NumBlocks - used
}
