// Package lines reads a text source into a frozen, normalized LineBuffer.
package lines

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/wordfreq/internal/tokenizer"
	"github.com/badele/wordfreq/internal/types"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Encodings lists the accepted source encodings.
var Encodings = []string{"utf8", "cp437", "cp850", "iso-8859-1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder returns a reader yielding UTF-8 from r. UTF-8 input is passed
// through byte for byte, minus a leading BOM.
func Decoder(r io.Reader, sourceEncoding string) (io.Reader, error) {
	var decoder *encoding.Decoder

	switch sourceEncoding {
	case "", "utf8":
		return stripUTF8BOM(r), nil
	case "cp437":
		decoder = charmap.CodePage437.NewDecoder()
	case "cp850":
		decoder = charmap.CodePage850.NewDecoder()
	case "iso-8859-1":
		decoder = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, sourceEncoding)
	}

	return transform.NewReader(r, decoder), nil
}

func stripUTF8BOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// Read normalizes every line of r into a new LineBuffer and freezes it.
func Read(r io.Reader, sourceEncoding string) (*types.LineBuffer, error) {
	dec, err := Decoder(r, sourceEncoding)
	if err != nil {
		return nil, err
	}

	buf := types.NewLineBuffer(64)
	br := bufio.NewReader(dec)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if appendErr := buf.Append(tokenizer.Normalize(line)); appendErr != nil {
				return nil, appendErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lines: %w", err)
		}
	}

	buf.Freeze()
	return buf, nil
}

// ReadBytes is Read over an in-memory document.
func ReadBytes(data []byte, sourceEncoding string) (*types.LineBuffer, error) {
	return Read(bytes.NewReader(data), sourceEncoding)
}

// ReadFile opens path and reads it. The special path "-" reads stdin.
func ReadFile(path, sourceEncoding string) (*types.LineBuffer, error) {
	if path == "-" {
		return Read(os.Stdin, sourceEncoding)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return Read(f, sourceEncoding)
}
