package handler

import (
	"bytes"
	"sync"
)

const pooledBufferCap = 1024

// bufferPool holds JSON encoding buffers; plot views run to a few KB
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, pooledBufferCap))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer drops oversized buffers so one large response does not pin memory
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*pooledBufferCap {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
