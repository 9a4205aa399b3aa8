// Package level decodes the .INF metadata files that accompany each game
// level: texture references, sound-effect mappings and ceiling
// parameters. Most .INF files ship XOR-obfuscated; Load undoes that
// before parsing.
package level

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/duskhall/render"
)

// Parse errors.
var (
	// ErrUnknownSection means a line started a section the format does
	// not define.
	ErrUnknownSection = errors.New("level: unrecognized .INF section")

	// ErrMalformedSound means a @SOUND line did not hold a filename and
	// a numeric ID.
	ErrMalformedSound = errors.New("level: malformed @SOUND entry")
)

// parseMode identifies which '@' section is currently being parsed.
type parseMode int

const (
	modeFloors parseMode = iota
	modeWalls
	modeFlats
	modeSound
	modeText
)

// sectionModes maps section headers to parse modes. Initialized once,
// read-only afterwards. A header may carry trailing tokens (for example
// "@FLATS NOSHOW"), so lookups use only the first field of the line.
var sectionModes = map[string]parseMode{
	"@FLOORS": modeFloors,
	"@WALLS":  modeWalls,
	"@FLATS":  modeFlats,
	"@SOUND":  modeSound,
	"@TEXT":   modeText,
}

// sectionNames holds the canonical header for each mode.
var sectionNames = map[parseMode]string{
	modeFloors: "@FLOORS",
	modeWalls:  "@WALLS",
	modeFlats:  "@FLATS",
	modeSound:  "@SOUND",
	modeText:   "@TEXT",
}

// encryptionKeys is the 8-byte XOR key stream most .INF files are
// obfuscated with. The key index repeats every 8 bytes and the added
// counter wraps every 256.
var encryptionKeys = [8]byte{0xEA, 0x7B, 0x4E, 0xBD, 0x19, 0xC9, 0x38, 0x99}

// unencryptedNames lists the .INF files that ship as plain text.
var unencryptedNames = map[string]struct{}{
	"CRYSTAL3.INF": {},
	"IMPPAL1.INF":  {},
	"IMPPAL2.INF":  {},
	"IMPPAL3.INF":  {},
	"IMPPAL4.INF":  {},
}

// DefaultCeilingHeight is the ceiling height assumed when a level does
// not override it.
const DefaultCeilingHeight = 100

// Ceiling holds the level's ceiling parameters.
type Ceiling struct {
	Height         int
	OutdoorDungeon bool
}

// Info is the decoded level metadata.
type Info struct {
	// Sounds maps a sound ID to its uppercased .VOC filename.
	Sounds map[int]string

	// Ceiling carries the ceiling parameters, defaulted until the
	// floors grammar sets them.
	Ceiling Ceiling

	// Unparsed keeps the raw lines of sections whose grammar is not
	// decoded yet, keyed by section header. Later passes interpret
	// them without a re-read from disk.
	Unparsed map[string][]string
}

// Decrypt undoes the XOR obfuscation in place.
func Decrypt(data []byte) {
	keyIndex := 0
	var count byte
	for i := range data {
		data[i] ^= count + encryptionKeys[keyIndex]
		keyIndex = (keyIndex + 1) % len(encryptionKeys)
		count++
	}
}

// Encrypted reports whether the named .INF file ships obfuscated. The
// handful of plain-text files are known by name.
func Encrypted(filename string) bool {
	_, plain := unencryptedNames[strings.ToUpper(filepath.Base(filename))]
	return !plain
}

// Load reads, decrypts if needed and parses the named .INF file.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	if Encrypted(path) {
		Decrypt(data)
	}
	info, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("level: parse %s: %w", path, err)
	}
	render.Logger().Debug("level metadata loaded",
		"path", path, "sounds", len(info.Sounds))
	return info, nil
}

// Parse decodes already-decrypted .INF text. Parsing starts in the
// floors section; a header line switches sections and an unknown header
// fails the whole parse.
func Parse(text string) (*Info, error) {
	info := &Info{
		Sounds:   make(map[int]string),
		Ceiling:  Ceiling{Height: DefaultCeilingHeight},
		Unparsed: make(map[string][]string),
	}

	mode := modeFloors
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		if line == "" {
			continue
		}

		if line[0] == '@' {
			header := strings.Fields(line)[0]
			m, ok := sectionModes[header]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSection, header)
			}
			mode = m
			continue
		}

		switch mode {
		case modeSound:
			if err := parseSoundLine(info, line); err != nil {
				return nil, err
			}
		default:
			// Grammar not decoded yet; keep the raw line.
			name := sectionNames[mode]
			info.Unparsed[name] = append(info.Unparsed[name], line)
		}
	}
	return info, nil
}

// parseSoundLine decodes one "<filename> <id>" pair. Filenames are
// normalized to upper case; a later entry with the same ID wins.
func parseSoundLine(info *Info, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return fmt.Errorf("%w: %q", ErrMalformedSound, line)
	}
	id, err := strconv.Atoi(tokens[1])
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformedSound, line, err)
	}
	info.Sounds[id] = strings.ToUpper(tokens[0])
	return nil
}
