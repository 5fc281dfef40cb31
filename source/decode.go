package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sugawarayuuta/sonnet"
)

// SystemPrefix marks a plain-text line as a system notice
const SystemPrefix = "[system] "

// envelope is the JSON chat frame: {"author": "...", "text": "...", "system": false}
type envelope struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	System bool   `json:"system"`
}

// Decode parses one frame: a JSON envelope when it starts with '{', otherwise plain text
// Plain text starting with SystemPrefix is a system notice
func Decode(data []byte) (Arrival, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := sonnet.Unmarshal(trimmed, &env); err != nil {
			return Arrival{}, fmt.Errorf("decode chat frame: %w", err)
		}
		a := Arrival{
			Text:   Sanitize(env.Text),
			Author: Sanitize(env.Author),
			Kind:   KindUser,
		}
		if env.System {
			a.Kind = KindSystem
		}
		return a, nil
	}

	text := string(trimmed)
	if rest, ok := strings.CutPrefix(text, SystemPrefix); ok {
		return Arrival{Text: Sanitize(rest), Kind: KindSystem}, nil
	}
	return Arrival{Text: Sanitize(text), Kind: KindUser}, nil
}
