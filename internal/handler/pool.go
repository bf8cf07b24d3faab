package handler

import (
	"bytes"
	"sync"
)

const responseBufferSize = 1024

// Round results with card draws and challenge lists run a few hundred bytes
var responseBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 16*responseBufferSize {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}
