// Package fs implements the file system core: directory and inode
// semantics over the block device, with a current-directory cursor.
//
// Operations return a response body and an error; a non-nil error is
// always a Status, which the protocol layer turns into a wire code.
// Disk state is left valid on every Status error.
package fs

import (
	"github.com/bfslab/basicnfs/alloc"
	"github.com/bfslab/basicnfs/block"
	"github.com/bfslab/basicnfs/common"
	"github.com/bfslab/basicnfs/disk"
	"github.com/bfslab/basicnfs/util"
)

type FileSys struct {
	d      disk.Disk
	a      *alloc.Alloc
	curDir common.Bnum
}

// Mount attaches to the disk, formatting it first if it has never held
// a file system, and places the cursor at the root.
func Mount(d disk.Disk) *FileSys {
	fs := &FileSys{
		d:      d,
		a:      alloc.MkAlloc(d),
		curDir: common.RootBnum,
	}
	if !block.IsDir(d.Read(common.RootBnum)) {
		fs.format()
	}
	return fs
}

// format stamps a fresh image: superblock and root marked allocated,
// root initialized as an empty directory.
func (fs *FileSys) format() {
	util.DPrintf(1, "formatting fresh disk\n")
	fs.a.MarkUsed(common.SuperBnum)
	fs.a.MarkUsed(common.RootBnum)
	fs.d.Write(common.RootBnum, block.MkDirBlock().Encode())
}

// Unmount releases the disk. The FileSys must not be used afterwards.
func (fs *FileSys) Unmount() {
	fs.d.Close()
}

// NumFree reports free blocks; tests use it to check conservation.
func (fs *FileSys) NumFree() uint64 {
	return fs.a.NumFree()
}

// readDir reads block n as a directory.
func (fs *FileSys) readDir(n common.Bnum) (*block.DirBlock, error) {
	blk := fs.d.Read(n)
	if !block.IsDir(blk) {
		return nil, StatusFileNotDir
	}
	return block.DecodeDir(blk), nil
}

// readInode reads block n as a file inode. The error is named from the
// caller's perspective: it asked for a file and found a directory.
func (fs *FileSys) readInode(n common.Bnum) (*block.Inode, error) {
	blk := fs.d.Read(n)
	if !block.IsInode(blk) {
		return nil, StatusFileIsDir
	}
	return block.DecodeInode(blk), nil
}

// lookup returns the slot index binding name in dir, or -1.
func lookup(dir *block.DirBlock, name string) int {
	for i, e := range dir.Entries {
		if e.Blk != common.NullBnum && e.Name == name {
			return i
		}
	}
	return -1
}

// insertIntoDir binds name -> handle in dir. The checks run in the
// fixed order: collision, directory full, name length.
func (fs *FileSys) insertIntoDir(dir *block.DirBlock, handle common.Bnum, name string) error {
	if lookup(dir, name) >= 0 {
		return StatusFileExists
	}
	if dir.NumEntries >= common.MaxDirEntries {
		return StatusDirFull
	}
	if uint64(len(name)) > common.MaxFnameSize {
		return StatusFileNameTooLong
	}
	for i, e := range dir.Entries {
		if e.Blk == common.NullBnum {
			dir.Entries[i] = block.DirEnt{Name: name, Blk: handle}
			dir.NumEntries++
			return nil
		}
	}
	// NumEntries said there was room
	panic("directory entry count does not match its slots")
}

// makeBlock allocates a block, initializes it with init, and binds it
// to name in the current directory. The allocation is rolled back if
// the insert fails.
func (fs *FileSys) makeBlock(name string, init func() disk.Block) error {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return err
	}
	handle := fs.a.AllocNum()
	if handle == common.NullBnum {
		return StatusDiskFull
	}
	if err := fs.insertIntoDir(dir, handle, name); err != nil {
		fs.a.FreeNum(handle)
		return err
	}
	fs.d.Write(handle, init())
	fs.d.Write(fs.curDir, dir.Encode())
	return nil
}
