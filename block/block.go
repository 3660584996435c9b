// Package block gives typed views of raw disk blocks.
//
// A block is one of three things: a directory block, an inode block, or
// an opaque data block. Directory and inode blocks carry a magic tag in
// their first word; data blocks have none. Callers discriminate with
// IsDir/IsInode on the raw block and then decode.
package block

import (
	"github.com/tchajed/marshal"

	"github.com/bfslab/basicnfs/common"
	"github.com/bfslab/basicnfs/disk"
)

// DirEnt is one directory slot. Blk == common.NullBnum marks the slot
// free.
type DirEnt struct {
	Name string
	Blk  common.Bnum
}

// DirBlock is a directory: a fixed table of name -> block bindings.
// NumEntries equals the number of slots with a non-null Blk.
type DirBlock struct {
	NumEntries uint64
	Entries    [common.MaxDirEntries]DirEnt
}

// Inode describes a regular file: its byte size and the data blocks
// backing it. Blocks[i] == common.NullBnum means the slot is
// unallocated; allocated slots are contiguous from index 0.
type Inode struct {
	Size   uint64
	Blocks [common.MaxDataBlocks]common.Bnum
}

func magicOf(blk disk.Block) uint32 {
	dec := marshal.NewDec(blk)
	return dec.GetInt32()
}

// IsDir reports whether the raw block carries the directory magic.
func IsDir(blk disk.Block) bool {
	return magicOf(blk) == common.DirMagic
}

// IsInode reports whether the raw block carries the inode magic.
func IsInode(blk disk.Block) bool {
	return magicOf(blk) == common.InodeMagic
}

// MkDirBlock returns an empty directory block.
func MkDirBlock() *DirBlock {
	return &DirBlock{}
}

// MkInode returns an empty file inode.
func MkInode() *Inode {
	return &Inode{}
}

// MkDataBlock returns a zeroed data block.
func MkDataBlock() disk.Block {
	return make(disk.Block, common.BlockSize)
}

func putName(enc *marshal.Enc, name string) {
	slot := make([]byte, common.NameSlotSize)
	copy(slot, name)
	enc.PutBytes(slot)
}

func getName(dec *marshal.Dec) string {
	slot := dec.GetBytes(common.NameSlotSize)
	for i, b := range slot {
		if b == 0 {
			return string(slot[:i])
		}
	}
	return string(slot)
}

// Encode packs the directory into a block, stamping the magic.
func (d *DirBlock) Encode() disk.Block {
	enc := marshal.NewEnc(common.BlockSize)
	enc.PutInt32(common.DirMagic)
	enc.PutInt32(uint32(d.NumEntries))
	for _, e := range d.Entries {
		putName(&enc, e.Name)
		enc.PutInt32(uint32(e.Blk))
	}
	return enc.Finish()
}

// DecodeDir unpacks a directory block. The caller must have verified
// IsDir.
func DecodeDir(blk disk.Block) *DirBlock {
	dec := marshal.NewDec(blk)
	dec.GetInt32() // magic
	d := &DirBlock{}
	d.NumEntries = uint64(dec.GetInt32())
	for i := range d.Entries {
		d.Entries[i].Name = getName(&dec)
		d.Entries[i].Blk = common.Bnum(dec.GetInt32())
	}
	return d
}

// Encode packs the inode into a block, stamping the magic.
func (ip *Inode) Encode() disk.Block {
	enc := marshal.NewEnc(common.BlockSize)
	enc.PutInt32(common.InodeMagic)
	enc.PutInt32(uint32(ip.Size))
	for _, b := range ip.Blocks {
		enc.PutInt32(uint32(b))
	}
	return enc.Finish()
}

// DecodeInode unpacks an inode block. The caller must have verified
// IsInode.
func DecodeInode(blk disk.Block) *Inode {
	dec := marshal.NewDec(blk)
	dec.GetInt32() // magic
	ip := &Inode{}
	ip.Size = uint64(dec.GetInt32())
	for i := range ip.Blocks {
		ip.Blocks[i] = common.Bnum(dec.GetInt32())
	}
	return ip
}
