// Package wire implements the text protocol framing.
//
// A request is one line, "<cmd> [args]\r\n", and a response is three
// header lines and a body:
//
//	<code> <SYMBOL>\r\n
//	Length: <n>\r\n
//	\r\n
//	<n bytes of body>
//
// Both directions terminate the wire message with a single NUL byte,
// which is what the reader scans for.
package wire

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/bfslab/basicnfs/fs"
)

// Request is a parsed command line.
type Request struct {
	Cmd  string
	Name string
	Data string // append payload
	N    uint64 // head byte count
}

// ReadFrame consumes one NUL-terminated message from r and returns it
// without the NUL. It returns io.EOF when the peer has closed cleanly.
func ReadFrame(r *bufio.Reader) (string, error) {
	frame, err := r.ReadString('\x00')
	if err != nil {
		return "", err
	}
	return frame[:len(frame)-1], nil
}

// ParseRequest parses the first CRLF-terminated line of a request
// frame. An unknown verb or a malformed argument list yields
// fs.StatusCommandNotFound.
func ParseRequest(frame string) (Request, error) {
	line := frame
	if i := strings.Index(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	tokens := strings.Split(line, " ")
	req := Request{Cmd: tokens[0]}
	switch req.Cmd {
	case "ls", "home":
		if len(tokens) != 1 {
			return Request{}, fs.StatusCommandNotFound
		}
	case "mkdir", "cd", "rmdir", "create", "cat", "rm", "stat":
		if len(tokens) != 2 {
			return Request{}, fs.StatusCommandNotFound
		}
		req.Name = tokens[1]
	case "append":
		if len(tokens) != 3 {
			return Request{}, fs.StatusCommandNotFound
		}
		req.Name = tokens[1]
		req.Data = tokens[2]
	case "head":
		if len(tokens) != 3 {
			return Request{}, fs.StatusCommandNotFound
		}
		req.Name = tokens[1]
		n, err := strconv.ParseUint(tokens[2], 10, 64)
		if err != nil {
			return Request{}, fs.StatusCommandNotFound
		}
		req.N = n
	default:
		return Request{}, fs.StatusCommandNotFound
	}
	return req, nil
}

// FormatRequest builds the wire form of a request line, NUL included.
func FormatRequest(line string) []byte {
	return append([]byte(line+"\r\n"), 0)
}

// FormatResponse frames a status and body, NUL included.
func FormatResponse(st fs.Status, body string) []byte {
	hdr := strconv.Itoa(int(st)) + " " + st.Symbol() + "\r\n" +
		"Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n"
	return append([]byte(hdr+body), 0)
}

// ParseResponse splits a response frame into its status code and body.
func ParseResponse(frame string) (fs.Status, string, error) {
	rest := frame
	line := func() (string, bool) {
		i := strings.Index(rest, "\r\n")
		if i < 0 {
			return "", false
		}
		l := rest[:i]
		rest = rest[i+2:]
		return l, true
	}
	statusLine, ok := line()
	if !ok {
		return 0, "", fs.StatusCommandNotFound
	}
	codeStr := statusLine
	if i := strings.IndexByte(codeStr, ' '); i >= 0 {
		codeStr = codeStr[:i]
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return 0, "", err
	}
	lengthLine, ok := line()
	if !ok {
		return 0, "", fs.StatusCommandNotFound
	}
	n, err := strconv.Atoi(strings.TrimPrefix(lengthLine, "Length: "))
	if err != nil {
		return 0, "", err
	}
	if _, ok := line(); !ok { // blank separator
		return 0, "", fs.StatusCommandNotFound
	}
	if n > len(rest) {
		n = len(rest)
	}
	return fs.Status(code), rest[:n], nil
}
