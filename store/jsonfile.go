package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// indent matches the layout of files written by earlier versions
const indent = "    "

// readFile returns the file contents, or nil when the file does not exist
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// decodeArray parses a file holding a single JSON array.
// An absent or zero-length file is an empty sequence.
func decodeArray[T any](path string, data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &CorruptionError{Path: path, Err: err}
	}
	return out, nil
}

// decodeArrays parses a file that may hold several JSON arrays written back to
// back ("[...][...]"), as left behind by an append-mode writer. Elements are
// returned in file order together with the number of arrays found.
func decodeArrays(path string, data []byte) ([]json.RawMessage, int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, 0, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var all []json.RawMessage
	chunks := 0
	for {
		var chunk []json.RawMessage
		err := dec.Decode(&chunk)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, chunks, &CorruptionError{Path: path, Err: err}
		}
		chunks++
		all = append(all, chunk...)
	}
	return all, chunks, nil
}

// writeJSONFileAtomic writes v as one indented JSON array via temp file + rename
func writeJSONFileAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return err
	}
	return writeFileAtomicSameDir(path, b, 0o644)
}

func writeFileAtomicSameDir(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_"+filepath.Base(path)+"_*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
