package format

// Writer accumulates formatted lines. Every line is terminated with '\n'.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// WriteLine appends line followed by a newline.
func (w *Writer) WriteLine(line string) {
	w.buf = append(w.buf, line...)
	w.buf = append(w.buf, '\n')
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Render joins lines into file content. An empty slice renders as no bytes.
func Render(lines []string) []byte {
	size := 0
	for _, l := range lines {
		size += len(l) + 1
	}
	w := NewWriter(size)
	for _, l := range lines {
		w.WriteLine(l)
	}
	return w.Bytes()
}
