package fs

import "errors"

// Status is a user-visible command error. The zero value is OK; the
// remaining values are the wire codes the client renders by number.
type Status int

const (
	StatusOK                   Status = 0
	StatusFileNotDir           Status = 500
	StatusFileIsDir            Status = 501
	StatusFileExists           Status = 502
	StatusFileNotExists        Status = 503
	StatusFileNameTooLong      Status = 504
	StatusDiskFull             Status = 505
	StatusDirFull              Status = 506
	StatusDirNotEmpty          Status = 507
	StatusAppendExceedsMaxSize Status = 508
	StatusCommandNotFound      Status = 509
)

func (s Status) Symbol() string {
	switch s {
	case StatusFileNotDir:
		return "FILE_NOT_DIR"
	case StatusFileIsDir:
		return "FILE_IS_DIR"
	case StatusFileExists:
		return "FILE_EXISTS"
	case StatusFileNotExists:
		return "FILE_NOT_EXISTS"
	case StatusFileNameTooLong:
		return "FILE_NAME_TOO_LONG"
	case StatusDiskFull:
		return "DISK_FULL"
	case StatusDirFull:
		return "DIR_FULL"
	case StatusDirNotEmpty:
		return "DIR_NOT_EMPTY"
	case StatusAppendExceedsMaxSize:
		return "APPEND_EXCEEDS_MAX_SIZE"
	case StatusCommandNotFound:
		return "COMMAND_NOT_FOUND"
	default:
		return "OK"
	}
}

func (s Status) Error() string {
	return s.Symbol()
}

// StatusOf maps an operation error back to its wire status. A nil error
// is StatusOK.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	panic("not a status error: " + err.Error())
}
