package utils

import (
	"errors"
	"io"
)

// ReadAllLimit reads at most max bytes and fails when the input is larger.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := io.LimitReader(r, max+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("file too large")
	}
	return b, nil
}
