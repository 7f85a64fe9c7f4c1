package dupfiles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Comparator decides whether two files hold the same bytes.
//
// With Shallow set, two regular files whose stat signatures (type, size and
// modification time) are identical are reported equal without reading them.
// That is a heuristic: distinct files with the same size and mtime, such as
// a timestamp-preserving copy that was later edited in place, compare equal.
type Comparator struct {
	ChunkSize int
	Shallow   bool
}

// NewComparator creates a comparator; a non-positive chunkSize uses
// DefaultChunkSize and anything above MaxChunkSize is clamped
func NewComparator(chunkSize int, shallow bool) *Comparator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize > MaxChunkSize {
		chunkSize = MaxChunkSize
	}
	return &Comparator{
		ChunkSize: chunkSize,
		Shallow:   shallow,
	}
}

// statSignature is the subset of stat(2) used for shallow comparison
type statSignature struct {
	fileType uint32
	size     int64
	mtime    unix.Timespec
}

func (s statSignature) isRegular() bool {
	return s.fileType == unix.S_IFREG
}

// statSignatureOf stats path, following symlinks
func statSignatureOf(path string) (statSignature, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return statSignature{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return statSignature{
		fileType: uint32(st.Mode) & unix.S_IFMT,
		size:     st.Size,
		mtime:    st.Mtim,
	}, nil
}

// Equal reports whether a and b are equal regular files. I/O failures make
// the files unequal; they are logged at verbose level 1 and never returned.
func (c *Comparator) Equal(a, b string) bool {
	sigA, err := statSignatureOf(a)
	if err != nil {
		VerboseLog(1, "Compare: %v", err)
		return false
	}
	sigB, err := statSignatureOf(b)
	if err != nil {
		VerboseLog(1, "Compare: %v", err)
		return false
	}

	if !sigA.isRegular() || !sigB.isRegular() {
		return false
	}
	if c.Shallow && sigA == sigB {
		DebugLog(DebugCompare, "shallow match %s == %s", a, b)
		return true
	}
	if sigA.size != sigB.size {
		return false
	}

	equal, err := c.compareContent(a, b, sigA.size)
	if err != nil {
		VerboseLog(1, "Compare: %v", err)
		return false
	}
	DebugLog(DebugCompare, "content %s %s: equal=%t", a, b, equal)
	return equal
}

// bufferSize returns the read size for files of the given length: ChunkSize,
// or one byte past the end for smaller files so a single read reaches EOF
func (c *Comparator) bufferSize(size int64) int {
	if size >= 0 && size < int64(c.ChunkSize) {
		return int(size) + 1
	}
	return c.ChunkSize
}

// compareContent reads both files of the given size in lockstep
func (c *Comparator) compareContent(a, b string, size int64) (bool, error) {
	fileA, err := os.Open(a)
	if err != nil {
		return false, fmt.Errorf("failed to open file %s: %w", a, err)
	}
	defer fileA.Close()

	fileB, err := os.Open(b)
	if err != nil {
		return false, fmt.Errorf("failed to open file %s: %w", b, err)
	}
	defer fileB.Close()

	bufSize := c.bufferSize(size)
	bufA := make([]byte, bufSize)
	bufB := make([]byte, bufSize)

	for {
		nA, err := readChunk(fileA, bufA)
		if err != nil {
			return false, fmt.Errorf("failed to read from file %s: %w", a, err)
		}
		nB, err := readChunk(fileB, bufB)
		if err != nil {
			return false, fmt.Errorf("failed to read from file %s: %w", b, err)
		}

		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		// A short chunk means both files reached end of stream together
		if nA < bufSize {
			return true, nil
		}
	}
}

// readChunk fills buf, returning fewer bytes only at end of file
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}
