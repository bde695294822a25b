package cli

import (
	"io"
	"os"
)

// nopCloser lets a shared writer stand in for a file.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the file at path, or w when path is empty or "-".
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	out, err := openOutput(w, path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
