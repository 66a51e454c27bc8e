package utils

import "io"

// WriterCounter counts the bytes written through it.
type WriterCounter struct {
	Writer io.Writer
	Count  int64
}

func (w *WriterCounter) Write(p []byte) (n int, err error) {
	n, err = w.Writer.Write(p)
	w.Count += int64(n)
	return
}
