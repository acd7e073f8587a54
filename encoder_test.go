package hxkit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxkit/lib/form"
	"github.com/pthm/hxkit/lib/params"
)

func TestHiddenStateRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("state-key"))
	require.NoError(t, err)

	for _, sensitive := range []bool{false, true} {
		state := params.Tree{"step": "2", "draft": params.Tree{"id": "9"}}
		field, err := HiddenState(enc, "_state", state, sensitive)
		require.NoError(t, err)

		out, err := HTML([]any{"form", field})
		require.NoError(t, err)

		elements, err := form.ParseHTML(strings.NewReader(out))
		require.NoError(t, err)
		require.Len(t, elements, 1)

		body := form.Values(elements)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := OpenState(enc, req, "_state", sensitive)
		require.NoError(t, err)
		assert.Equal(t, state, got)
	}
}

func TestOpenStateMissing(t *testing.T) {
	enc, err := NewEncoder([]byte("state-key"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	got, err := OpenState(enc, req, "_state", false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenStateTampered(t *testing.T) {
	enc, err := NewEncoder([]byte("state-key"))
	require.NoError(t, err)
	other, err := NewEncoder([]byte("other-key"))
	require.NoError(t, err)

	sealed, err := other.Encode(params.Tree{"a": "1"}, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/?_state="+url.QueryEscape(sealed), nil)
	_, err = OpenState(enc, req, "_state", false)
	require.Error(t, err)
	assert.True(t, IsDecryptionError(err))
}
