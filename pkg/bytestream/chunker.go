// Package bytestream models the pull-based production of an HTTP response
// body: the transport asks for the next chunk, the iterator yields a slice of
// the in-memory buffer until exhausted. The sequence is finite and
// non-restartable, one response only.
package bytestream

import "io"

const DefaultChunkSize = 32 * 1024

type ChunkIterator struct {
	buf       []byte
	chunkSize int
	off       int
}

func NewChunkIterator(buf []byte, chunkSize int) *ChunkIterator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkIterator{buf: buf, chunkSize: chunkSize}
}

// Next yields a view into the underlying buffer, at most chunkSize bytes. The
// second return is false once the sequence is done.
func (it *ChunkIterator) Next() ([]byte, bool) {
	if it.off >= len(it.buf) {
		return nil, false
	}
	end := it.off + it.chunkSize
	if end > len(it.buf) {
		end = len(it.buf)
	}
	chunk := it.buf[it.off:end]
	it.off = end
	return chunk, true
}

// Len reports the total byte count of the sequence, for Content-Length.
func (it *ChunkIterator) Len() int {
	return len(it.buf)
}

// Reader adapts the iterator to io.Reader so it can feed a streaming response
// body. Reads pull one chunk at a time and drain it across calls.
func (it *ChunkIterator) Reader() io.Reader {
	return &chunkReader{it: it}
}

type chunkReader struct {
	it      *ChunkIterator
	pending []byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		chunk, ok := r.it.Next()
		if !ok {
			return 0, io.EOF
		}
		r.pending = chunk
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}
