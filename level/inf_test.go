package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleINF = `@FLOORS
DUNGEON.IMG
*CEILING 100

@WALLS
WALL1.IMG

@FLATS NOSHOW
TREE.IMG

@SOUND
drip 0
DRUMS.voc 1
eerie 2

@TEXT
*TEXT 0
Some display text.
`

func TestParseSounds(t *testing.T) {
	info, err := Parse(sampleINF)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[int]string{
		0: "DRIP",
		1: "DRUMS.VOC",
		2: "EERIE",
	}
	if len(info.Sounds) != len(want) {
		t.Fatalf("got %d sounds, want %d", len(info.Sounds), len(want))
	}
	for id, name := range want {
		if got := info.Sounds[id]; got != name {
			t.Errorf("sound %d = %q, want %q", id, got, name)
		}
	}
}

func TestParseKeepsUndecodedSections(t *testing.T) {
	info, err := Parse(sampleINF)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		section string
		lines   int
	}{
		{"@FLOORS", 2},
		{"@WALLS", 1},
		{"@FLATS", 1},
		{"@TEXT", 2},
	}
	for _, tc := range tests {
		if got := len(info.Unparsed[tc.section]); got != tc.lines {
			t.Errorf("%s kept %d lines, want %d", tc.section, got, tc.lines)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	info, err := Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Ceiling.Height != DefaultCeilingHeight {
		t.Errorf("ceiling height = %d, want %d", info.Ceiling.Height, DefaultCeilingHeight)
	}
	if len(info.Sounds) != 0 {
		t.Errorf("empty input produced %d sounds", len(info.Sounds))
	}
}

func TestParseCarriageReturns(t *testing.T) {
	info, err := Parse("@SOUND\r\nsplash 7\r\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := info.Sounds[7]; got != "SPLASH" {
		t.Errorf("sound 7 = %q, want SPLASH", got)
	}
}

func TestParseUnknownSection(t *testing.T) {
	_, err := Parse("@BOGUS\nwhatever\n")
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("err = %v, want ErrUnknownSection", err)
	}
}

func TestParseMalformedSound(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing id", "@SOUND\nlonely\n"},
		{"non-numeric id", "@SOUND\nthud seven\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			if !errors.Is(err, ErrMalformedSound) {
				t.Errorf("err = %v, want ErrMalformedSound", err)
			}
		})
	}
}

func TestDecryptRoundTrip(t *testing.T) {
	plain := []byte("@SOUND\nthunder 3\n")
	data := make([]byte, len(plain))
	copy(data, plain)

	// The obfuscation is a symmetric XOR, so applying it twice is the
	// identity.
	Decrypt(data)
	if string(data) == string(plain) {
		t.Fatal("Decrypt left data unchanged")
	}
	Decrypt(data)
	if string(data) != string(plain) {
		t.Fatalf("double Decrypt = %q, want original", data)
	}
}

func TestDecryptCounterWraps(t *testing.T) {
	data := make([]byte, 600)
	Decrypt(data)

	// Zero input makes the key stream visible: byte i must be
	// count + key, both wrapping independently.
	for _, i := range []int{0, 7, 255, 256, 263, 599} {
		want := byte(i) + encryptionKeys[i%len(encryptionKeys)]
		if data[i] != want {
			t.Errorf("key stream byte %d = %#x, want %#x", i, data[i], want)
		}
	}
}

func TestEncrypted(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"DUNGEON.INF", true},
		{"CRYSTAL3.INF", false},
		{"crystal3.inf", false},
		{filepath.Join("data", "IMPPAL2.INF"), false},
	}
	for _, tc := range tests {
		if got := Encrypted(tc.name); got != tc.want {
			t.Errorf("Encrypted(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoad(t *testing.T) {
	plain := []byte("@SOUND\nwind 4\n")
	data := make([]byte, len(plain))
	copy(data, plain)
	Decrypt(data) // Load will undo this

	path := filepath.Join(t.TempDir(), "TOWER.INF")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	info, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := info.Sounds[4]; got != "WIND" {
		t.Errorf("sound 4 = %q, want WIND", got)
	}
}

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CRYSTAL3.INF")
	if err := os.WriteFile(path, []byte("@SOUND\nchime 9\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	info, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := info.Sounds[9]; got != "CHIME" {
		t.Errorf("sound 9 = %q, want CHIME", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "NOPE.INF")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}
