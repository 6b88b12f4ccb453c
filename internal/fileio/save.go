package fileio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const SaveVersion = 1

// Header is written as a JSON line ahead of the binary records so save files can
// be inspected with zstdcat.
type Header struct {
	Version int `json:"version"`
	Depth   int `json:"depth"`
	Records int `json:"records"`
}

// WriteSave writes a zstd compressed save file. body writes the binary records.
// The file is written to a temp path and renamed into place.
func WriteSave(path string, hdr Header, body func(*Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := writeSave(tmp, hdr, body); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp save after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp save: %w", err)
	}
	return nil
}

func writeSave(path string, hdr Header, body func(*Writer) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening save: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)

	if hdr.Version == 0 {
		hdr.Version = SaveVersion
	}
	hb, err := json.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("marshalling header: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := body(NewWriter(bw)); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing save: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return f.Sync()
}

// ReadSave opens a save written by WriteSave and hands the header and a record
// reader to body.
func ReadSave(path string, body func(Header, *Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening save: %w", err)
	}
	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = f.Close() }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	var hdr Header
	if err := json.Unmarshal(line, &hdr); err != nil {
		return fmt.Errorf("unmarshalling header: %w", err)
	}
	if hdr.Version != SaveVersion {
		return fmt.Errorf("unsupported save version %d", hdr.Version)
	}

	return body(hdr, NewReader(br))
}
