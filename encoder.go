package hxkit

import (
	"net/http"

	"github.com/pthm/hxkit/lib/encoding"
	"github.com/pthm/hxkit/lib/markup"
	"github.com/pthm/hxkit/lib/params"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given encryption key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// HiddenState seals tree into a hidden input named name.
//
// Signed state is readable by the client but tamper-proof; sensitive state
// is encrypted. Read it back with OpenState.
func HiddenState(enc *Encoder, name string, tree params.Tree, sensitive bool) (any, error) {
	sealed, err := enc.Encode(tree, sensitive)
	if err != nil {
		return nil, err
	}
	return []any{"input", markup.A("type", "hidden", "name", name, "value", sealed)}, nil
}

// OpenState reads the sealed field name from the request form and decodes
// it. A missing field yields an empty tree.
func OpenState(enc *Encoder, r *http.Request, name string, sensitive bool) (params.Tree, error) {
	sealed := r.FormValue(name)
	if sealed == "" {
		return params.Tree{}, nil
	}
	return enc.Decode(sealed, sensitive)
}
