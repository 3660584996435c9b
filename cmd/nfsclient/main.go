// nfsclient runs the shell against a remote file server.
//
// Usage: nfsclient host:port
//
//	nfsclient -s <script> host:port
package main

import (
	"fmt"
	"os"

	"github.com/bfslab/basicnfs/shell"
)

func main() {
	switch {
	case len(os.Args) == 2:
		sh, err := shell.Mount(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection failed with error %q\n", err)
			os.Exit(1)
		}
		sh.Run(os.Stdin)
	case len(os.Args) == 4 && os.Args[1] == "-s":
		sh, err := shell.Mount(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection failed with error %q\n", err)
			os.Exit(1)
		}
		sh.RunScript(os.Args[2])
	default:
		fmt.Fprintln(os.Stderr, "Invalid command line")
		fmt.Fprintln(os.Stderr, "Usage (one of the following):")
		fmt.Fprintln(os.Stderr, "nfsclient server:port")
		fmt.Fprintln(os.Stderr, "nfsclient -s <script-name> server:port")
		os.Exit(1)
	}
}
