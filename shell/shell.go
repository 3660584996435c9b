// Package shell is the client-side command interface: it validates
// command lines locally, sends them to the server, and renders the
// framed responses.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/bfslab/basicnfs/fs"
	"github.com/bfslab/basicnfs/wire"
)

const Prompt = "NFS> "

type Shell struct {
	conn    net.Conn
	r       *bufio.Reader
	out     io.Writer
	errw    io.Writer
	mounted bool
}

// Mount connects to the server at addr ("host:port").
func Mount(addr string) (*Shell, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Shell{
		conn:    conn,
		r:       bufio.NewReader(conn),
		out:     os.Stdout,
		errw:    os.Stderr,
		mounted: true,
	}
	return s, nil
}

// Unmount drops the server connection if it is still up.
func (s *Shell) Unmount() {
	if !s.mounted {
		return
	}
	s.conn.Close()
	s.mounted = false
}

// Run executes commands from in until quit or EOF.
func (s *Shell) Run(in io.Reader) {
	if !s.mounted {
		return
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			break
		}
		if s.execute(scanner.Text()) {
			break
		}
	}
	s.Unmount()
}

// RunScript executes commands from the named file, echoing each line
// behind the prompt.
func (s *Shell) RunScript(path string) {
	if !s.mounted {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(s.errw, "Could not open script file")
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(s.out, Prompt+scanner.Text())
		if s.execute(scanner.Text()) {
			break
		}
	}
	s.Unmount()
}

type command struct {
	name string
	file string
	data string // append payload or head count
}

// parseCommand validates a command line. The returned name is empty
// for invalid lines, which never reach the server.
func (s *Shell) parseCommand(line string) command {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return command{}
	}
	cmd := command{name: tokens[0]}
	if len(tokens) > 1 {
		cmd.file = tokens[1]
	}
	if len(tokens) > 2 {
		cmd.data = tokens[2]
	}
	var arity int
	switch cmd.name {
	case "ls", "home", "quit":
		arity = 1
	case "mkdir", "cd", "rmdir", "create", "cat", "rm", "stat":
		arity = 2
	case "append", "head":
		arity = 3
	default:
		fmt.Fprintf(s.errw, "Invalid command line: %s is not a command\n", cmd.name)
		return command{}
	}
	if len(tokens) != arity {
		fmt.Fprintf(s.errw, "Invalid command line: %s has improper number of arguments\n", cmd.name)
		return command{}
	}
	return cmd
}

// execute runs one command line and reports whether the user quit.
func (s *Shell) execute(line string) bool {
	cmd := s.parseCommand(line)
	switch cmd.name {
	case "":
		return false
	case "quit":
		return true
	case "head":
		if _, err := strconv.ParseUint(cmd.data, 10, 32); err != nil {
			fmt.Fprintf(s.errw, "Invalid command line: %s is not a valid number of bytes\n", cmd.data)
			return false
		}
		s.rpc(cmd.name + " " + cmd.file + " " + cmd.data)
	case "ls", "home":
		s.rpc(cmd.name)
	case "append":
		s.rpc(cmd.name + " " + cmd.file + " " + cmd.data)
	default:
		s.rpc(cmd.name + " " + cmd.file)
	}
	return false
}

// rpc sends one request and renders the response. A socket failure
// unmounts the shell.
func (s *Shell) rpc(line string) {
	if _, err := s.conn.Write(wire.FormatRequest(line)); err != nil {
		fmt.Fprintf(s.errw, "Write failed with error %q\n", err)
		s.Unmount()
		return
	}
	frame, err := wire.ReadFrame(s.r)
	if err != nil {
		fmt.Fprintf(s.errw, "Read failed with error %q\n", err)
		s.Unmount()
		return
	}
	s.render(frame)
}

var statusMessages = map[fs.Status]string{
	fs.StatusFileNotDir:           "File is not a directory!",
	fs.StatusFileIsDir:            "File is a directory!",
	fs.StatusFileExists:           "File exists!",
	fs.StatusFileNotExists:        "File does not exist!",
	fs.StatusFileNameTooLong:      "File name is too long!",
	fs.StatusDiskFull:             "Disk is full!",
	fs.StatusDirFull:              "Directory is full!",
	fs.StatusDirNotEmpty:          "Directory is not empty!",
	fs.StatusAppendExceedsMaxSize: "Append exceeds maximum filesize!",
	fs.StatusCommandNotFound:      "Command not found!",
}

func (s *Shell) render(frame string) {
	st, body, err := wire.ParseResponse(frame)
	if err != nil {
		fmt.Fprintln(s.errw, err)
		return
	}
	if msg, ok := statusMessages[st]; ok {
		fmt.Fprintln(s.errw, msg)
	}
	if len(body) > 0 {
		fmt.Fprint(s.out, body)
	}
	fmt.Fprintln(s.out)
}
