// CLAUDE:SUMMARY Wire schema for action batches and per-record construction of the closed five-variant Action type.
package actions

import (
	"encoding/json"
	"fmt"
	"math"
)

// Batch is the wire shape of one submitted action list. Records stay
// loosely typed at this level so that "unparseable JSON" (terminal) and
// "well-formed but invalid action" (skipped) remain distinct failures.
// Done and Note are accepted for the orchestrator's benefit; the executor
// does not act on them.
type Batch struct {
	Actions []json.RawMessage `json:"actions"`
	Done    *bool             `json:"done,omitempty"`
	Note    string            `json:"note,omitempty"`
}

// Kind tags the action variants.
type Kind string

const (
	KindNavigate Kind = "navigate"
	KindClickAt  Kind = "click_at"
	KindScroll   Kind = "scroll"
	KindType     Kind = "type"
	KindWait     Kind = "wait"
)

// Action is one unit of scripted interaction. Exactly the fields of its
// Kind are meaningful; the rest stay zero.
type Action struct {
	Kind   Kind
	URL    string  // navigate
	X, Y   float64 // click_at, normalized [0,1000]
	DeltaY float64 // scroll, pixels
	Text   string  // type
	MS     int     // wait, milliseconds
}

// decodeAction constructs a typed Action from a raw record. An Action is
// only built when the declared type matches one of the five kinds and all
// required fields are present and well-typed; anything else is rejected
// with an error describing why (the caller counts it as skipped).
func decodeAction(raw json.RawMessage) (Action, error) {
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Action{}, fmt.Errorf("record is not a JSON object")
	}

	kind, ok := rec["type"].(string)
	if !ok || kind == "" {
		return Action{}, fmt.Errorf("record has no \"type\" field")
	}

	switch Kind(kind) {
	case KindNavigate:
		url, ok := rec["url"].(string)
		if !ok || url == "" {
			return Action{}, fmt.Errorf("navigate requires a \"url\" string")
		}
		return Action{Kind: KindNavigate, URL: url}, nil

	case KindClickAt:
		x, okX := jsonNumber(rec["x"])
		y, okY := jsonNumber(rec["y"])
		if !okX || !okY {
			return Action{}, fmt.Errorf("click_at requires numeric \"x\" and \"y\"")
		}
		return Action{Kind: KindClickAt, X: x, Y: y}, nil

	case KindScroll:
		dy, ok := jsonNumber(rec["deltaY"])
		if !ok {
			return Action{}, fmt.Errorf("scroll requires a numeric \"deltaY\"")
		}
		return Action{Kind: KindScroll, DeltaY: dy}, nil

	case KindType:
		text, ok := rec["text"].(string)
		if !ok {
			return Action{}, fmt.Errorf("type requires a \"text\" string")
		}
		return Action{Kind: KindType, Text: text}, nil

	case KindWait:
		ms, ok := jsonNumber(rec["ms"])
		if !ok || ms != math.Trunc(ms) {
			return Action{}, fmt.Errorf("wait requires an integer \"ms\"")
		}
		return Action{Kind: KindWait, MS: int(ms)}, nil
	}

	return Action{}, fmt.Errorf("unsupported action type %q", kind)
}

// jsonNumber unwraps a decoded JSON number.
func jsonNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
