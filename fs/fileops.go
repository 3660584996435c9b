package fs

import (
	"bytes"

	"github.com/bfslab/basicnfs/block"
	"github.com/bfslab/basicnfs/common"
	"github.com/bfslab/basicnfs/disk"
	"github.com/bfslab/basicnfs/util"
)

// Create makes an empty regular file in the current directory.
func (fs *FileSys) Create(name string) error {
	util.DPrintf(2, "create %s\n", name)
	return fs.makeBlock(name, func() disk.Block {
		return block.MkInode().Encode()
	})
}

// resolveInode finds name in the current directory and reads its inode.
func (fs *FileSys) resolveInode(name string) (common.Bnum, *block.Inode, error) {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return common.NullBnum, nil, err
	}
	i := lookup(dir, name)
	if i < 0 {
		return common.NullBnum, nil, StatusFileNotExists
	}
	inum := dir.Entries[i].Blk
	ip, err := fs.readInode(inum)
	if err != nil {
		return common.NullBnum, nil, err
	}
	return inum, ip, nil
}

// Append adds data to the end of the named file. Space is reserved up
// front: either every block the write needs is allocated, or the disk
// is untouched and the append fails.
func (fs *FileSys) Append(name string, data string) error {
	if len(data) == 0 {
		return nil
	}
	inum, ip, err := fs.resolveInode(name)
	if err != nil {
		return err
	}
	dataLen := uint64(len(data))
	if util.SumOverflows(ip.Size, dataLen) || ip.Size+dataLen > common.MaxFileSize {
		return StatusAppendExceedsMaxSize
	}

	// count the blocks this write needs beyond what the file holds
	freeInCur := common.BlockSize - ip.Size%common.BlockSize
	var allocSize uint64
	if dataLen > freeInCur {
		allocSize = dataLen - freeInCur
	}
	need := allocSize / common.BlockSize
	if allocSize%common.BlockSize != 0 {
		need++
	}
	if ip.Blocks[ip.Size/common.BlockSize] == common.NullBnum {
		need++
	}

	// reserve them all before touching the inode or any data block
	var handles []common.Bnum
	for i := uint64(0); i < need; i++ {
		h := fs.a.AllocNum()
		if h == common.NullBnum {
			for _, h2 := range handles {
				fs.a.FreeNum(h2)
			}
			return StatusDiskFull
		}
		handles = append(handles, h)
	}

	// hand the reserved blocks to the inode's empty slots
	for i := ip.Size / common.BlockSize; i < common.MaxDataBlocks && len(handles) > 0; i++ {
		if ip.Blocks[i] == common.NullBnum {
			ip.Blocks[i] = handles[len(handles)-1]
			handles = handles[:len(handles)-1]
		}
	}

	// copy bytes, persisting each data block as it fills
	dataIdx := uint64(0)
	for dataIdx < dataLen {
		h := ip.Blocks[ip.Size/common.BlockSize]
		blk := fs.d.Read(h)
		for off := ip.Size % common.BlockSize; off < common.BlockSize && dataIdx < dataLen; off++ {
			blk[off] = data[dataIdx]
			dataIdx++
			ip.Size++
		}
		fs.d.Write(h, blk)
	}
	fs.d.Write(inum, ip.Encode())
	return nil
}

// Cat emits the whole file.
func (fs *FileSys) Cat(name string) (string, error) {
	return fs.Head(name, common.MaxFileSize)
}

// Head emits the first n bytes of the file, followed by a newline. An
// empty file yields an empty body with no newline.
func (fs *FileSys) Head(name string, n uint64) (string, error) {
	_, ip, err := fs.resolveInode(name)
	if err != nil {
		return "", err
	}
	if ip.Size == 0 {
		return "", nil
	}
	var out bytes.Buffer
	remaining := util.Min(n, ip.Size)
	for i := uint64(0); remaining > 0; i++ {
		blk := fs.d.Read(ip.Blocks[i])
		cnt := util.Min(remaining, common.BlockSize)
		out.Write(blk[:cnt])
		remaining -= cnt
	}
	out.WriteByte('\n')
	return out.String(), nil
}

// Rm deletes the named file, reclaiming its data blocks and then the
// inode itself.
func (fs *FileSys) Rm(name string) error {
	dir, err := fs.readDir(fs.curDir)
	if err != nil {
		return err
	}
	i := lookup(dir, name)
	if i < 0 {
		return StatusFileNotExists
	}
	inum := dir.Entries[i].Blk
	ip, err := fs.readInode(inum)
	if err != nil {
		return err
	}
	for b := uint64(0); b < util.RoundUp(ip.Size, common.BlockSize); b++ {
		fs.a.FreeNum(ip.Blocks[b])
	}
	fs.a.FreeNum(inum)
	dir.Entries[i] = block.DirEnt{}
	dir.NumEntries--
	fs.d.Write(fs.curDir, dir.Encode())
	return nil
}
