package state

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// ErrMalformed marks a token that cannot be read as its field's type.
var ErrMalformed = errors.New("malformed state token")

// ErrNonFinite marks a NaN or infinite value that Encode refuses to write,
// since Decode would reject it.
var ErrNonFinite = errors.New("non-finite state value")

// Store reads and writes one state file with a fixed layout.
type Store struct {
	Path   string
	Layout Layout
}

func NewStore(path string, layout Layout) *Store {
	return &Store{Path: path, Layout: layout}
}

// Report describes the outcome of a Load.
type Report struct {
	Path     string
	Layout   Layout
	Expected int // fields in the layout
	Applied  int // fields assigned from the file, in layout order
	Missing  bool
	Err      error
}

// Complete reports whether every field was read from the file.
func (r Report) Complete() bool {
	return r.Err == nil && r.Applied == r.Expected
}

// Read reports whether f was assigned from the file.
func (r Report) Read(f Field) bool {
	n := min(r.Applied, len(r.Layout.Fields))
	for _, lf := range r.Layout.Fields[:n] {
		if lf == f {
			return true
		}
	}
	return false
}

// Load fills rec from the store's file. Loading never fails: a missing file
// leaves rec untouched, and a short or malformed file assigns fields in order
// up to the first token that cannot be read, leaving that field and all later
// ones at their current values. The report says what happened.
func (s *Store) Load(rec *Record) Report {
	rep := Report{Path: s.Path, Layout: s.Layout, Expected: len(s.Layout.Fields)}

	f, err := os.Open(s.Path)
	if err != nil {
		rep.Missing = errors.Is(err, fs.ErrNotExist)
		rep.Err = err
		return rep
	}
	defer f.Close()

	rep.Applied, rep.Err = Decode(f, s.Layout, rec)
	return rep
}

// Save overwrites the store's file with rec, one token per line.
func (s *Store) Save(rec Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s.Layout, rec); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write state %q: %w", s.Path, err)
	}
	return nil
}

// Decode reads whitespace separated tokens from r into rec in layout order.
// It returns how many fields were assigned. Reading stops at the first
// missing token (io.ErrUnexpectedEOF) or unreadable token (ErrMalformed);
// the field at that position is left unchanged. Extra tokens are ignored.
func Decode(r io.Reader, layout Layout, rec *Record) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	for i, field := range layout.Fields {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return i, fmt.Errorf("read %s: %w", field, err)
			}
			return i, io.ErrUnexpectedEOF
		}
		if err := assign(rec, field, sc.Text()); err != nil {
			return i, err
		}
	}
	return len(layout.Fields), nil
}

// Encode writes rec to w in layout order, one token per line. A NaN or
// infinite float fails with ErrNonFinite before anything is written.
func Encode(w io.Writer, layout Layout, rec Record) error {
	bw := bufio.NewWriter(w)
	for _, field := range layout.Fields {
		tok, err := format(&rec, field)
		if err != nil {
			return err
		}
		bw.WriteString(tok)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func assign(rec *Record, field Field, tok string) error {
	if p := field.float(rec); p != nil {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %q", ErrMalformed, field, tok)
		}
		*p = float32(v)
		return nil
	}
	if p := field.flag(rec); p != nil {
		switch tok {
		case "0":
			*p = false
		case "1":
			*p = true
		default:
			return fmt.Errorf("%w: %s = %q", ErrMalformed, field, tok)
		}
		return nil
	}
	return fmt.Errorf("unknown state field %s", field)
}

func format(rec *Record, field Field) (string, error) {
	if p := field.float(rec); p != nil {
		if v := float64(*p); math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: %s = %v", ErrNonFinite, field, v)
		}
		// Shortest representation that parses back to the same float32.
		return strconv.FormatFloat(float64(*p), 'g', -1, 32), nil
	}
	if p := field.flag(rec); p != nil {
		if *p {
			return "1", nil
		}
		return "0", nil
	}
	return "", fmt.Errorf("unknown state field %s", field)
}
