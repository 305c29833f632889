package ioutil

import "io"

// ProgressWriter reports the cumulative number of bytes written after every
// successful write.
type ProgressWriter struct {
	wr      io.Writer
	written int64
	onWrite func(written int64)
}

func (p *ProgressWriter) Write(buf []byte) (n int, err error) {
	n, err = p.wr.Write(buf)
	if n > 0 {
		p.written += int64(n)
		if p.onWrite != nil {
			p.onWrite(p.written)
		}
	}
	return
}

// Written returns the number of bytes written so far.
func (p *ProgressWriter) Written() int64 {
	return p.written
}

func NewProgressWriter(
	wr io.Writer,
	onWrite func(written int64),
) *ProgressWriter {
	return &ProgressWriter{
		wr:      wr,
		onWrite: onWrite,
	}
}
