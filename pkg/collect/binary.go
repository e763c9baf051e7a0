package collect

import (
	"bytes"
	"errors"
	"io"
	"os"
)

const sniffLen = 512

// looksBinary reports whether the start of the file contains a NUL byte or
// more than 30% non-printable bytes. Empty files are text.
func looksBinary(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	buf = buf[:n]
	if len(buf) == 0 {
		return false, nil
	}

	if bytes.IndexByte(buf, 0) >= 0 {
		return true, nil
	}

	nonPrintable := 0
	for _, b := range buf {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buf)) > 0.3, nil
}

// isPrintable accepts printable ASCII, common whitespace and any byte of a
// multi-byte UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
