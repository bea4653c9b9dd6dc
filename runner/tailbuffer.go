package runner

// tailBuffer implements io.Writer and keeps only the last `limit` bytes
// written to it. Writes never fail.
type tailBuffer struct {
	buf   []byte
	limit int
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return len(p), nil
	}
	if len(p) >= b.limit {
		b.buf = append(b.buf[:0], p[len(p)-b.limit:]...)
		return len(p), nil
	}

	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		copy(b.buf, b.buf[over:])
		b.buf = b.buf[:b.limit]
	}
	return len(p), nil
}

// Bytes returns a copy of the retained output.
func (b *tailBuffer) Bytes() []byte {
	if len(b.buf) == 0 {
		return nil
	}
	return append([]byte(nil), b.buf...)
}
