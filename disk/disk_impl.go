package disk

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/bfslab/basicnfs/common"
)

var _ Disk = (*fileDisk)(nil)

type fileDisk struct {
	fd        int
	numBlocks uint64
}

// NewFileDisk opens or creates the disk image at path and sizes it to
// exactly common.NumBlocks * common.BlockSize bytes.
func NewFileDisk(path string) (Disk, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT, 0666)
	if err != nil {
		return nil, err
	}
	var stat unix.Stat_t
	err = unix.Fstat(fd, &stat)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	sz := common.NumBlocks * common.BlockSize
	if uint64(stat.Size) != sz {
		err = unix.Ftruncate(fd, int64(sz))
		if err != nil {
			unix.Close(fd)
			return nil, err
		}
	}
	return fileDisk{fd: fd, numBlocks: common.NumBlocks}, nil
}

func (d fileDisk) Read(a common.Bnum) Block {
	if a >= d.numBlocks {
		panic(fmt.Errorf("out-of-bounds read at %v", a))
	}
	buf := make(Block, common.BlockSize)
	n, err := unix.Pread(d.fd, buf, int64(a*common.BlockSize))
	if err != nil {
		panic("read failed: " + err.Error())
	}
	if uint64(n) != common.BlockSize {
		panic(fmt.Errorf("short read of block %v (%d bytes)", a, n))
	}
	return buf
}

func (d fileDisk) Write(a common.Bnum, v Block) {
	if uint64(len(v)) != common.BlockSize {
		panic(fmt.Errorf("v is not block-sized (%d bytes)", len(v)))
	}
	if a >= d.numBlocks {
		panic(fmt.Errorf("out-of-bounds write at %v", a))
	}
	n, err := unix.Pwrite(d.fd, v, int64(a*common.BlockSize))
	if err != nil {
		panic("write failed: " + err.Error())
	}
	if uint64(n) != common.BlockSize {
		panic(fmt.Errorf("short write of block %v (%d bytes)", a, n))
	}
	// every write is self-flushing; there is no write barrier above this
	err = unix.Fsync(d.fd)
	if err != nil {
		panic("file sync failed: " + err.Error())
	}
}

func (d fileDisk) Size() uint64 {
	return d.numBlocks
}

func (d fileDisk) Close() {
	err := unix.Close(d.fd)
	if err != nil {
		panic(err)
	}
}

var _ Disk = (*memDisk)(nil)

type memDisk struct {
	blocks []Block
}

// NewMemDisk returns an in-memory disk of common.NumBlocks blocks,
// useful for tests.
func NewMemDisk() Disk {
	blocks := make([]Block, common.NumBlocks)
	for i := range blocks {
		blocks[i] = make(Block, common.BlockSize)
	}
	return memDisk{blocks: blocks}
}

func (d memDisk) Read(a common.Bnum) Block {
	if a >= uint64(len(d.blocks)) {
		panic(fmt.Errorf("out-of-bounds read at %v", a))
	}
	buf := make(Block, common.BlockSize)
	copy(buf, d.blocks[a])
	return buf
}

func (d memDisk) Write(a common.Bnum, v Block) {
	if uint64(len(v)) != common.BlockSize {
		panic(fmt.Errorf("v is not block-sized (%d bytes)", len(v)))
	}
	if a >= uint64(len(d.blocks)) {
		panic(fmt.Errorf("out-of-bounds write at %v", a))
	}
	copy(d.blocks[a], v)
}

func (d memDisk) Size() uint64 {
	return uint64(len(d.blocks))
}

func (d memDisk) Close() {}
