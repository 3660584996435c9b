package fs

import (
	"bytes"
	"strconv"

	"github.com/bfslab/basicnfs/block"
	"github.com/bfslab/basicnfs/common"
	"github.com/bfslab/basicnfs/disk"
	"github.com/bfslab/basicnfs/util"
)

// Mkdir creates an empty subdirectory in the current directory.
func (fs *FileSys) Mkdir(name string) error {
	util.DPrintf(2, "mkdir %s\n", name)
	return fs.makeBlock(name, func() disk.Block {
		return block.MkDirBlock().Encode()
	})
}

// Cd descends into the named subdirectory. Unlike its ancestor, it
// refuses to move the cursor onto a file inode.
func (fs *FileSys) Cd(name string) error {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return err
	}
	i := lookup(dir, name)
	if i < 0 {
		return StatusFileNotExists
	}
	target := dir.Entries[i].Blk
	if !block.IsDir(fs.d.Read(target)) {
		return StatusFileNotDir
	}
	fs.curDir = target
	return nil
}

// Home resets the cursor to the root directory.
func (fs *FileSys) Home() {
	fs.curDir = common.RootBnum
}

// Rmdir removes the named empty subdirectory.
func (fs *FileSys) Rmdir(name string) error {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return err
	}
	i := lookup(dir, name)
	if i < 0 {
		return StatusFileNotExists
	}
	target, err := fs.readDir(dir.Entries[i].Blk)
	if err != nil {
		return err
	}
	if target.NumEntries != 0 {
		return StatusDirNotEmpty
	}
	fs.a.FreeNum(dir.Entries[i].Blk)
	dir.Entries[i] = block.DirEnt{}
	dir.NumEntries--
	fs.d.Write(fs.curDir, dir.Encode())
	return nil
}

// Ls lists the current directory in slot order, one name per line with
// a trailing slash on directories, ending with a blank line.
func (fs *FileSys) Ls() (string, error) {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	for _, e := range dir.Entries {
		if e.Blk == common.NullBnum {
			continue
		}
		out.WriteString(e.Name)
		if block.IsDir(fs.d.Read(e.Blk)) {
			out.WriteByte('/')
		}
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	return out.String(), nil
}

// Stat describes the named entry. The field labels and the block-count
// formula (inode plus data blocks, computed as size/BlockSize + 2) are
// fixed; clients parse them.
func (fs *FileSys) Stat(name string) (string, error) {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return "", err
	}
	i := lookup(dir, name)
	if i < 0 {
		return "", StatusFileNotExists
	}
	e := dir.Entries[i]
	raw := fs.d.Read(e.Blk)
	var out bytes.Buffer
	if block.IsDir(raw) {
		out.WriteString("Directory name: " + e.Name + "/\n")
		out.WriteString("Directory block: " + strconv.FormatUint(e.Blk, 10) + "\n")
		return out.String(), nil
	}
	ip := block.DecodeInode(raw)
	numBlocks := uint64(1)
	firstBlock := "N/A"
	if ip.Size != 0 {
		numBlocks = ip.Size/common.BlockSize + 2
		firstBlock = strconv.FormatUint(ip.Blocks[0], 10)
	}
	out.WriteString("iNode block: " + strconv.FormatUint(e.Blk, 10) + "\n")
	out.WriteString("Bytes in files: " + strconv.FormatUint(ip.Size, 10) + "\n")
	out.WriteString("Number of blocks: " + strconv.FormatUint(numBlocks, 10) + "\n")
	out.WriteString("First block: " + firstBlock + "\n")
	return out.String(), nil
}
