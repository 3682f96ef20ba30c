package cartridge

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/gbcore/internal/errors"
)

// newROM returns a ROM only cartridge image with a valid header.
func newROM(title string) []byte {
	rom := make([]byte, Size)
	copy(rom[0x134:], title)
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestNewCartridge(t *testing.T) {
	rom := newROM("TETRIS")
	rom[0x0000] = 0x3E

	cart, err := NewCartridge(rom, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Title() != "TETRIS" {
		t.Errorf("expected title TETRIS, got %q", cart.Title())
	}
	h := cart.Header()
	if h.CartridgeType != ROM || h.ROMSize != 32*1024 || h.Hardware() != "DMG" {
		t.Errorf("unexpected header %s", h.String())
	}
	if !h.ValidChecksum() {
		t.Errorf("expected header checksum to be valid")
	}
	if cart.Component().Size() != Size || cart.Component().Bytes()[0] != 0x3E {
		t.Errorf("expected the ROM to be copied into the component")
	}
	if cart.Fingerprint() == 0 {
		t.Errorf("expected a fingerprint")
	}

	other, _ := NewCartridge(newROM("TETRIS2"), nil)
	if other.Fingerprint() == cart.Fingerprint() {
		t.Errorf("expected different ROMs to have different fingerprints")
	}
	if err := cart.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewCartridge_Errors(t *testing.T) {
	if _, err := NewCartridge(make([]byte, 0x4000), nil); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected bad parameter for a short ROM, got %v", err)
	}

	rom := newROM("ZELDA")
	rom[0x147] = byte(MBC1)
	_, err := NewCartridge(rom, nil)
	if !errors.Is(err, errors.NotImplemented) {
		t.Errorf("expected not implemented for MBC1, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	_, _ = w.Write(newROM("GZIPPED"))
	_ = w.Close()
	_ = f.Close()

	rom, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cart, err := NewCartridge(rom, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Title() != "GZIPPED" {
		t.Errorf("expected title GZIPPED, got %q", cart.Title())
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.gb")); !errors.Is(err, errors.IO) {
		t.Errorf("expected i/o error, got %v", err)
	}
}
