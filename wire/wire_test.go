package wire

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bfslab/basicnfs/fs"
)

func TestParseRequest(t *testing.T) {
	assert := assert.New(t)

	req, err := ParseRequest("mkdir dir1\r\n")
	assert.NoError(err)
	assert.Equal(Request{Cmd: "mkdir", Name: "dir1"}, req)

	req, err = ParseRequest("ls\r\n")
	assert.NoError(err)
	assert.Equal(Request{Cmd: "ls"}, req)

	req, err = ParseRequest("append foo hello\r\n")
	assert.NoError(err)
	assert.Equal(Request{Cmd: "append", Name: "foo", Data: "hello"}, req)

	req, err = ParseRequest("head foo 12\r\n")
	assert.NoError(err)
	assert.Equal(Request{Cmd: "head", Name: "foo", N: uint64(12)}, req)
}

func TestParseRequestErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseRequest("frobnicate foo\r\n")
	assert.Equal(fs.StatusCommandNotFound, fs.StatusOf(err))

	_, err = ParseRequest("ls extra\r\n")
	assert.Equal(fs.StatusCommandNotFound, fs.StatusOf(err))

	_, err = ParseRequest("mkdir\r\n")
	assert.Equal(fs.StatusCommandNotFound, fs.StatusOf(err))

	_, err = ParseRequest("head foo twelve\r\n")
	assert.Equal(fs.StatusCommandNotFound, fs.StatusOf(err))

	_, err = ParseRequest("append foo\r\n")
	assert.Equal(fs.StatusCommandNotFound, fs.StatusOf(err))
}

func TestFormatResponse(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0 OK\r\nLength: 6\r\n\r\nhello\n\x00",
		string(FormatResponse(fs.StatusOK, "hello\n")))
	assert.Equal("503 FILE_NOT_EXISTS\r\nLength: 0\r\n\r\n\x00",
		string(FormatResponse(fs.StatusFileNotExists, "")))
}

func TestResponseRoundTrip(t *testing.T) {
	assert := assert.New(t)

	frame := string(FormatResponse(fs.StatusOK, "dir1/\n\n"))
	st, body, err := ParseResponse(strings.TrimSuffix(frame, "\x00"))
	assert.NoError(err)
	assert.Equal(fs.StatusOK, st)
	assert.Equal("dir1/\n\n", body)

	frame = string(FormatResponse(fs.StatusDirFull, ""))
	st, body, err = ParseResponse(strings.TrimSuffix(frame, "\x00"))
	assert.NoError(err)
	assert.Equal(fs.StatusDirFull, st)
	assert.Equal("", body)
}

func TestReadFrameSplitsMessages(t *testing.T) {
	assert := assert.New(t)
	r := bufio.NewReader(strings.NewReader("mkdir a\r\n\x00ls\r\n\x00"))

	frame, err := ReadFrame(r)
	assert.NoError(err)
	assert.Equal("mkdir a\r\n", frame)

	frame, err = ReadFrame(r)
	assert.NoError(err)
	assert.Equal("ls\r\n", frame)

	_, err = ReadFrame(r)
	assert.Error(err, "a closed peer ends the stream")
}

func TestFormatRequest(t *testing.T) {
	assert.Equal(t, "cat foo\r\n\x00", string(FormatRequest("cat foo")))
}
