package main

import (
	"io"
	"os"
	"path/filepath"
)

// readSource returns the document at path, or all of stdin for "-".
func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == StreamStdio {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput writes rendered output to stdout for "-". Files are replaced
// atomically through a temporary sibling so a watcher never sees a partial file.
func writeOutput(path string, rendered string, stdout io.Writer) error {
	if path == StreamStdio {
		_, err := io.WriteString(stdout, rendered)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+filepath.Base(path)+TempFileSuffix)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, rendered); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
