// Package server runs the per-client session loop: read a request,
// apply it to the file system, write the framed response. The loop is
// strictly sequential; one client, one total order of disk mutations.
package server

import (
	"bufio"
	"net"

	"github.com/google/uuid"

	"github.com/bfslab/basicnfs/fs"
	"github.com/bfslab/basicnfs/util"
	"github.com/bfslab/basicnfs/wire"
)

// Serve handles the client on conn until it disconnects or the socket
// fails, then unmounts the file system and closes the socket.
func Serve(conn net.Conn, fsys *fs.FileSys) {
	id := uuid.New()
	util.DPrintf(1, "session %v: mounted\n", id)
	r := bufio.NewReader(conn)
	for {
		frame, err := wire.ReadFrame(r)
		if err != nil {
			// peer close ends the session
			break
		}
		st, body := Dispatch(fsys, frame)
		if _, err := conn.Write(wire.FormatResponse(st, body)); err != nil {
			util.DPrintf(1, "session %v: write failed: %v\n", id, err)
			break
		}
	}
	fsys.Unmount()
	conn.Close()
	util.DPrintf(1, "session %v: unmounted\n", id)
}

// Dispatch parses one request frame and applies it, returning the
// response status and body.
func Dispatch(fsys *fs.FileSys, frame string) (fs.Status, string) {
	req, err := wire.ParseRequest(frame)
	if err != nil {
		return fs.StatusOf(err), ""
	}
	var body string
	switch req.Cmd {
	case "mkdir":
		err = fsys.Mkdir(req.Name)
	case "cd":
		err = fsys.Cd(req.Name)
	case "home":
		fsys.Home()
	case "rmdir":
		err = fsys.Rmdir(req.Name)
	case "ls":
		body, err = fsys.Ls()
	case "create":
		err = fsys.Create(req.Name)
	case "append":
		err = fsys.Append(req.Name, req.Data)
	case "cat":
		body, err = fsys.Cat(req.Name)
	case "head":
		body, err = fsys.Head(req.Name, req.N)
	case "rm":
		err = fsys.Rm(req.Name)
	case "stat":
		body, err = fsys.Stat(req.Name)
	}
	return fs.StatusOf(err), body
}
