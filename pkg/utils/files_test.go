package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	rom := bytes.Repeat([]byte{0x00, 0xC3, 0x50, 0x01}, 64)

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write(rom)
	_ = gw.Close()

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	fw, err := zw.Create("game.gb")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(rom)
	_ = zw.Close()

	var empty bytes.Buffer
	_ = zip.NewWriter(&empty).Close()

	t.Run("raw", func(t *testing.T) {
		for _, name := range []string{"game.gb", "dmg_boot.bin", "game"} {
			data, err := LoadFile(write(name, rom))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, rom) {
				t.Errorf("expected %s to load unchanged", name)
			}
		}
	})
	t.Run("gzip", func(t *testing.T) {
		data, err := LoadFile(write("game.gb.gz", gz.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, rom) {
			t.Errorf("expected gzip data to be decompressed")
		}
	})
	t.Run("zip", func(t *testing.T) {
		data, err := LoadFile(write("game.ZIP", zipped.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, rom) {
			t.Errorf("expected first zip entry to be loaded")
		}
	})
	t.Run("7z", func(t *testing.T) {
		data, err := LoadFile(filepath.Join("testdata", "game.7z"))
		if err != nil {
			t.Fatal(err)
		}
		expected := bytes.Repeat([]byte{0x00, 0xC3, 0x50, 0x01}, 16)
		if !bytes.Equal(data, expected) {
			t.Errorf("expected first 7z entry % X, got % X", expected, data)
		}
	})
	t.Run("errors", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "missing.gb")); err == nil {
			t.Errorf("expected error for missing file")
		}
		if _, err := LoadFile(write("empty.zip", empty.Bytes())); err == nil {
			t.Errorf("expected error for empty archive")
		}
		if _, err := LoadFile(write("bad.gz", rom)); err == nil {
			t.Errorf("expected error for corrupt gzip")
		}
		if _, err := LoadFile(write("bad.7z", rom)); err == nil {
			t.Errorf("expected error for corrupt 7z")
		}
	})
}
