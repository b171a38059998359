package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxDecodeElements bounds the allocation a single header can request.
const maxDecodeElements = 1 << 28

// WriteTo writes m in text format: a "rows cols" header line followed by
// one line per row. It implements io.WriterTo.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	buf := make([]byte, 0, 32)
	buf = strconv.AppendInt(buf, int64(m.rows), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(m.cols), 10)
	buf = append(buf, '\n')
	_, _ = bw.Write(buf)

	for i := 0; i < m.rows; i++ {
		buf = buf[:0]
		for j, v := range m.data[i*m.cols : (i+1)*m.cols] {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			break
		}
	}

	err := bw.Flush()
	return cw.n, err
}

// MarshalText implements encoding.TextMarshaler.
func (m *Matrix) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if _, err := m.WriteTo(&sb); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Trailing tokens after
// the matrix are rejected.
func (m *Matrix) UnmarshalText(text []byte) error {
	dec := NewDecoder(strings.NewReader(string(text)))
	decoded, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty input: %w", ErrMalformedStream, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return err
	}
	if tok, ok := dec.next(); ok {
		return fmt.Errorf("%w: unexpected trailing token %q", ErrMalformedStream, tok)
	}
	if err := dec.Err(); err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// Parse decodes a single matrix from its text form.
func Parse(s string) (*Matrix, error) {
	m := new(Matrix)
	if err := m.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return m, nil
}

// Decoder reads a sequence of text-format matrices from a stream.
//
// A Decoder buffers its input, so consecutive matrices in one stream must be
// read through the same Decoder.
type Decoder struct {
	sc  *bufio.Scanner
	err error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Decoder{sc: sc}
}

// Err returns the first read error encountered by the underlying scanner.
func (d *Decoder) Err() error {
	if d.err != nil {
		return d.err
	}
	return d.sc.Err()
}

func (d *Decoder) next() (string, bool) {
	if !d.sc.Scan() {
		return "", false
	}
	return d.sc.Text(), true
}

// token returns the next token, or an error describing what was expected.
func (d *Decoder) token(what string) (string, error) {
	tok, ok := d.next()
	if !ok {
		return "", d.truncated(what)
	}
	return tok, nil
}

func (d *Decoder) truncated(what string) error {
	if err := d.sc.Err(); err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrMalformedStream, what, err)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrMalformedStream, what, io.ErrUnexpectedEOF)
}

func (d *Decoder) dim(what string) (int, error) {
	tok, err := d.token(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedStream, what, tok)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", ErrMalformedStream, what, n)
	}
	return n, nil
}

// Decode reads the next matrix. The shape header is read first and
// determines how many values follow. It returns io.EOF when the stream ends
// cleanly before a header; any other failure wraps ErrMalformedStream.
func (d *Decoder) Decode() (*Matrix, error) {
	if d.err != nil {
		return nil, d.err
	}
	m, err := d.decode()
	if err != nil && !errors.Is(err, io.EOF) {
		d.err = err
	}
	return m, err
}

func (d *Decoder) decode() (*Matrix, error) {
	first, ok := d.next()
	if !ok {
		if err := d.sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading row count: %w", ErrMalformedStream, err)
		}
		return nil, io.EOF
	}
	rows, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("%w: row count %q is not an integer", ErrMalformedStream, first)
	}
	if rows < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", ErrMalformedStream, rows)
	}
	cols, err := d.dim("column count")
	if err != nil {
		return nil, err
	}
	if cols != 0 && rows > maxDecodeElements/cols {
		return nil, fmt.Errorf("%w: %s exceeds %d elements", ErrMalformedStream, Shape{rows, cols}, maxDecodeElements)
	}

	m := New(rows, cols)
	for i := range m.data {
		tok, ok := d.next()
		if !ok {
			return nil, d.truncated(fmt.Sprintf("value %d of %s", i, m.Shape()))
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d of %s: %q is not a number", ErrMalformedStream, i, m.Shape(), tok)
		}
		m.data[i] = v
	}
	return m, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
