package knowledge

import (
	"encoding/json"
	"io"
	"os"

	apperrors "faq-agent/errors"
)

// Load decodes a knowledge-base list from r. The list order is
// significant: it fixes entry indices for the lifetime of the built
// index.
func Load(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, apperrors.WrapError(err, "failed to decode knowledge base")
	}
	return entries, nil
}

// LoadFile reads the knowledge base from a JSON file on disk.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapErrorf(err, "failed to open knowledge base %s", path)
	}
	defer f.Close()
	return Load(f)
}
