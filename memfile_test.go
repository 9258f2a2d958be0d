package apetag

import (
	"errors"
	"io"
)

// memFile is a minimal in-memory implementation of File, standing in for
// *os.File in tests so the engine's rewrite logic can be exercised
// without touching the filesystem.
type memFile struct {
	data []byte
	pos  int64
}

func newMemFile(data []byte) *memFile {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &memFile{data: buf}
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	n := copy(m.data[m.pos:end], p)
	m.pos = end
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.data))
	default:
		return 0, errors.New("memFile: invalid whence")
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.New("memFile: negative position")
	}
	m.pos = pos
	return pos, nil
}

func (m *memFile) Truncate(size int64) error {
	if size < 0 {
		return errors.New("memFile: negative size")
	}
	if size <= int64(len(m.data)) {
		m.data = m.data[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return nil
}

var _ File = (*memFile)(nil)
