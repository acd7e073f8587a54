package hxkit

import (
	"encoding/json"

	"github.com/pthm/hxkit/lib/params"
)

// Callback asks the client to issue a follow-up request once the current
// response is swapped in. It travels in the HX-Trigger header.
type Callback struct {
	URL    string      `json:"url"`
	Target string      `json:"target,omitempty"`
	Swap   string      `json:"swap,omitempty"`
	Vals   params.Tree `json:"vals,omitempty"`
}

// IsZero returns true if the callback is empty/unset.
func (cb Callback) IsZero() bool {
	return cb.URL == ""
}

// TriggerJSON returns the JSON payload for the HX-Trigger header.
func (cb Callback) TriggerJSON() string {
	return BuildTriggerHeader(&cb, "", nil)
}

// CallbackFromTree reconstructs a Callback from a decoded tree, such as the
// detail of a trigger event folded through params.ParseQuery.
func CallbackFromTree(t params.Tree) Callback {
	cb := Callback{
		URL:    params.String(t["url"]),
		Target: params.String(t["target"]),
		Swap:   params.String(t["swap"]),
	}
	if vals, ok := params.AsTree(t["vals"]); ok {
		cb.Vals = vals
	}
	return cb
}

// BuildTriggerHeader builds an HX-Trigger header value.
//
//   - a bare event name is returned as is;
//   - an event with data becomes {"event": data};
//   - a callback is added under "hxkit:callback".
func BuildTriggerHeader(cb *Callback, trigger string, data params.Tree) string {
	if (cb == nil || cb.IsZero()) && trigger == "" {
		return ""
	}
	if (cb == nil || cb.IsZero()) && data == nil {
		return trigger
	}

	merged := make(map[string]any)
	if trigger != "" {
		if data != nil {
			merged[trigger] = data
		} else {
			merged[trigger] = true
		}
	}
	if cb != nil && !cb.IsZero() {
		merged["hxkit:callback"] = cb
	}

	out, _ := json.Marshal(merged)
	return string(out)
}
