// Package artifact reads and writes the newline-delimited record files
// passed between pipeline stages.
package artifact

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSONL writes one JSON record per line to path, creating parent
// directories as needed.
func WriteJSONL[T any](path string, records []T) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding record %d of %s: %w", i, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadJSONL reads every JSON record from path, one per line. Blank lines
// are ignored; parse failures report the offending line number.
func ReadJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// UpToDate reports whether out exists and is newer than every input.
// Stages use it to skip recomputation when nothing upstream changed.
func UpToDate(out string, inputs ...string) (bool, error) {
	outInfo, err := os.Stat(out)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat output %s: %w", out, err)
	}

	for _, in := range inputs {
		inInfo, err := os.Stat(in)
		if err != nil {
			return false, fmt.Errorf("stat input %s: %w", in, err)
		}
		if inInfo.ModTime().After(outInfo.ModTime()) {
			return false, nil
		}
	}
	return true, nil
}
