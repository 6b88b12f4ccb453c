package fileio

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWriter_Layout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteString("ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteFloat32(1.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// length prefixed string, bool byte, little endian 1.5
	exp := []byte{2, 0, 0, 0, 'a', 'b', 1, 0x00, 0x00, 0xc0, 0x3f}
	testutil.AssertEqual(t, "encoded", buf.String(), string(exp))
}

func TestWriter_StringLimit(t *testing.T) {
	tests := map[string]struct {
		size   int
		expErr string
	}{
		"at limit":   {size: MaxStringLength},
		"over limit": {size: MaxStringLength + 1, expErr: "invalid string length"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewWriter(&buf).WriteString(strings.Repeat("x", tt.size))

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				if !errors.Is(err, ErrInvalidLength) {
					t.Errorf("expected ErrInvalidLength, got %v", err)
				}
				testutil.AssertEqual(t, "written", buf.Len(), 0)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := NewReader(&buf).ReadString()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read back", len(got), tt.size)
		})
	}
}

func TestReader_ReadsWhatWriterWrote(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_ = w.WriteFloat32(-3.25)
	_ = w.WriteString("bk:sword")
	_ = w.WriteBool(false)
	_ = w.WriteInt32(-7)

	r := NewReader(&buf)

	f, err := r.ReadFloat32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "float", f, float32(-3.25))

	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "string", s, "bk:sword")

	b, err := r.ReadBool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "bool", b, false)

	i, err := r.ReadInt32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "int", i, int32(-7))
}

func TestReader_Errors(t *testing.T) {
	tests := map[string]struct {
		data   []byte
		expErr string
	}{
		"truncated length": {
			data:   []byte{1, 0},
			expErr: "reading 4 bytes",
		},
		"truncated body": {
			data:   []byte{5, 0, 0, 0, 'a'},
			expErr: "reading 5 bytes",
		},
		"negative length": {
			data:   []byte{0xff, 0xff, 0xff, 0xff},
			expErr: "invalid string length",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tt.data)).ReadString()
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestReader_UnexpectedEOF(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{1, 2})).ReadFloat32()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "run.sav")

	err := WriteSave(path, Header{Depth: 3, Records: 2}, func(w *Writer) error {
		if err := w.WriteString("bk:lamp"); err != nil {
			return err
		}
		return w.WriteString("bk:gun")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	err = ReadSave(path, func(hdr Header, r *Reader) error {
		testutil.AssertEqual(t, "version", hdr.Version, SaveVersion)
		testutil.AssertEqual(t, "depth", hdr.Depth, 3)
		for range hdr.Records {
			s, err := r.ReadString()
			if err != nil {
				return err
			}
			got = append(got, s)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", len(got), 2)
	testutil.AssertEqual(t, "first", got[0], "bk:lamp")
	testutil.AssertEqual(t, "second", got[1], "bk:gun")
}

func TestSave_BodyErrorLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sav")

	err := WriteSave(path, Header{}, func(w *Writer) error {
		return errors.New("boom")
	})
	testutil.AssertErrorContains(t, err, "boom")

	err = ReadSave(path, func(Header, *Reader) error { return nil })
	testutil.AssertErrorContains(t, err, "opening save")
}

func TestReadSave_MissingFile(t *testing.T) {
	err := ReadSave(filepath.Join(t.TempDir(), "nope.sav"), func(Header, *Reader) error { return nil })
	testutil.AssertErrorContains(t, err, "opening save")
}
