package dupfiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/google/vectorio"
	"gopkg.in/yaml.v3"
)

// maxIovecs keeps each writev call under the smallest common IOV_MAX
const maxIovecs = 1024

// FormatResult renders result in the given format as a list of buffers that
// are written out back to back. JSON is a single line of nested path arrays.
func FormatResult(result ScanResult, format string) ([][]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		if err := checkEncodablePaths(result, FormatJSON); err != nil {
			return nil, err
		}
		data, err := json.Marshal(result.Paths())
		if err != nil {
			return nil, fmt.Errorf("failed to encode result as json: %w", err)
		}
		return [][]byte{data, []byte("\n")}, nil

	case FormatYAML:
		if err := checkEncodablePaths(result, FormatYAML); err != nil {
			return nil, err
		}
		data, err := yaml.Marshal(result.Paths())
		if err != nil {
			return nil, fmt.Errorf("failed to encode result as yaml: %w", err)
		}
		return [][]byte{data}, nil

	case FormatFdupes:
		// fdupes style: one path per line, a blank line after each group
		var buffers [][]byte
		for _, group := range result {
			for _, file := range group.Files {
				buffers = append(buffers, []byte(file+"\n"))
			}
			buffers = append(buffers, []byte("\n"))
		}
		return buffers, nil

	case FormatHuman:
		var buffers [][]byte
		var duplicates int
		var wasted int64
		for i, group := range result {
			var header bytes.Buffer
			fmt.Fprintf(&header, "Group %d: %d files, %d bytes each", i+1, len(group.Files), group.Size)
			if group.Hash != "" {
				fmt.Fprintf(&header, ", hash %s", group.Hash)
			}
			header.WriteString("\n")
			buffers = append(buffers, header.Bytes())
			for _, file := range group.Files {
				buffers = append(buffers, []byte("  "+file+"\n"))
			}
			duplicates += len(group.Files) - 1
			wasted += int64(len(group.Files)-1) * group.Size
		}
		summary := fmt.Sprintf("Found %d duplicate groups, %d redundant files, %d bytes reclaimable\n",
			len(result), duplicates, wasted)
		return append(buffers, []byte(summary)), nil

	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// checkEncodablePaths rejects paths that are not valid UTF-8. The json and
// yaml encoders would substitute or re-encode their bytes, so the reported
// name would not identify the file.
func checkEncodablePaths(result ScanResult, format string) error {
	for _, group := range result {
		for _, file := range group.Files {
			if !utf8.ValidString(file) {
				return fmt.Errorf("cannot encode path %q as %s: not valid UTF-8 (use --format fdupes or human)", file, format)
			}
		}
	}
	return nil
}

// WriteResult writes the buffers to file with writev, batching to respect IOV_MAX
func WriteResult(file *os.File, buffers [][]byte) error {
	nonEmpty := make([][]byte, 0, len(buffers))
	iovecs := make([]syscall.Iovec, 0, len(buffers))
	for _, buf := range buffers {
		if len(buf) == 0 {
			continue
		}
		iovec := syscall.Iovec{Base: &buf[0]}
		iovec.SetLen(len(buf))
		iovecs = append(iovecs, iovec)
		nonEmpty = append(nonEmpty, buf)
	}

	for offset := 0; offset < len(iovecs); offset += maxIovecs {
		end := offset + maxIovecs
		if end > len(iovecs) {
			end = len(iovecs)
		}

		expected := 0
		for _, buf := range nonEmpty[offset:end] {
			expected += len(buf)
		}

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs[offset:end])
		if err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if nw < expected {
			// Short writev; finish the batch with plain writes
			remainder := bytes.Join(nonEmpty[offset:end], nil)[nw:]
			if _, err := file.Write(remainder); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		}
	}

	return nil
}
