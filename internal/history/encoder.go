package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Encode writes the records as [[round]] tables
func Encode(w io.Writer, records ...RoundRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("history: no records to encode")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(File{Rounds: records})
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(records ...RoundRecord) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, records...); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Decode reads every record from a history file
func Decode(r io.Reader) ([]RoundRecord, error) {
	var file File
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return file.Rounds, nil
}
