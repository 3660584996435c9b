// nfsd serves the file system to a single client over TCP.
//
// Usage: nfsd <port> [diskimage]
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/bfslab/basicnfs/disk"
	"github.com/bfslab/basicnfs/fs"
	"github.com/bfslab/basicnfs/server"
)

const defaultImage = "DISK"

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: nfsd port# [diskimage]")
		os.Exit(1)
	}
	port := os.Args[1]
	image := defaultImage
	if len(os.Args) == 3 {
		image = os.Args[2]
	}

	l, err := net.Listen("tcp", ":"+port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Socket listen failed with error %q\n", err)
		os.Exit(1)
	}
	defer l.Close()
	fmt.Println("Waiting for connection...")

	conn, err := l.Accept()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Socket accept failed with error %q\n", err)
		os.Exit(1)
	}
	fmt.Println("Client connected")

	d, err := disk.NewFileDisk(image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open disk image %q: %v\n", image, err)
		os.Exit(1)
	}
	server.Serve(conn, fs.Mount(d))
}
