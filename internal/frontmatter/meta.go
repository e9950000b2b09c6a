package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrDecode indicates a metadata block is not valid TOML or does not match
// the metadata schema.
var ErrDecode = errors.New("front matter decode failed")

// Meta is the typed metadata record. Template is empty when the page does
// not override its template.
type Meta struct {
	Template string `toml:"template"`

	// Ignored lists keys present in the block that the schema does not use.
	Ignored []string `toml:"-"`
}

// DecodeMeta decodes a metadata block. An empty or whitespace-only block
// yields a zero Meta.
func DecodeMeta(block []byte) (Meta, error) {
	var meta Meta
	if len(bytes.TrimSpace(block)) == 0 {
		return meta, nil
	}

	md, err := toml.Decode(string(block), &meta)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	for _, key := range md.Undecoded() {
		meta.Ignored = append(meta.Ignored, key.String())
	}
	return meta, nil
}
