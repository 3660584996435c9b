package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bfslab/basicnfs/common"
)

func TestEncodedSizes(t *testing.T) {
	assert.Equal(t, common.BlockSize, uint64(len(MkDirBlock().Encode())))
	assert.Equal(t, common.BlockSize, uint64(len(MkInode().Encode())))
	assert.Equal(t, common.BlockSize, uint64(len(MkDataBlock())))
}

func TestMagicProbes(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsDir(MkDirBlock().Encode()))
	assert.False(IsInode(MkDirBlock().Encode()))
	assert.True(IsInode(MkInode().Encode()))
	assert.False(IsDir(MkInode().Encode()))
	assert.False(IsDir(MkDataBlock()))
	assert.False(IsInode(MkDataBlock()))
}

func TestDirRoundTrip(t *testing.T) {
	assert := assert.New(t)
	d := MkDirBlock()
	d.Entries[0] = DirEnt{Name: "foo", Blk: 7}
	d.Entries[3] = DirEnt{Name: "longest", Blk: 42}
	d.NumEntries = 2

	d2 := DecodeDir(d.Encode())
	assert.Equal(uint64(2), d2.NumEntries)
	assert.Equal(DirEnt{Name: "foo", Blk: 7}, d2.Entries[0])
	assert.Equal(DirEnt{Name: "longest", Blk: 42}, d2.Entries[3])
	assert.Equal(DirEnt{}, d2.Entries[1], "untouched slots stay free")
}

func TestInodeRoundTrip(t *testing.T) {
	assert := assert.New(t)
	ip := MkInode()
	ip.Size = 300
	ip.Blocks[0] = 9
	ip.Blocks[1] = 4
	ip.Blocks[2] = 11

	ip2 := DecodeInode(ip.Encode())
	assert.Equal(uint64(300), ip2.Size)
	assert.Equal(common.Bnum(9), ip2.Blocks[0])
	assert.Equal(common.Bnum(4), ip2.Blocks[1])
	assert.Equal(common.Bnum(11), ip2.Blocks[2])
	assert.Equal(common.NullBnum, ip2.Blocks[3])
}

func TestMaxLengthName(t *testing.T) {
	d := MkDirBlock()
	d.Entries[0] = DirEnt{Name: "abcdefg", Blk: 2}
	d.NumEntries = 1
	d2 := DecodeDir(d.Encode())
	assert.Equal(t, "abcdefg", d2.Entries[0].Name, "a MaxFnameSize name survives the NUL-padded slot")
}
