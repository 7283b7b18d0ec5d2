package hook

import "strings"

// KV is one ordered key/value pair inside a bracket-section block. Order is
// part of the output contract, so blocks are built from slices, not maps.
type KV struct {
	Key   string
	Value string
}

// BlockContext renders the [BLOCK] context payload attached to every deny.
func BlockContext(gate, reason string) string {
	return Block("BLOCK", []KV{
		{"gate", gate},
		{"reason", reason},
		{"date", Today()},
	})
}

// Block renders a bracket-section block:
//
//	[NAME]
//	key: value
//
// The same format is used for injected context and the persisted session
// record, so the host can render either directly.
func Block(name string, kvs []KV) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(name)
	b.WriteString("]\n")
	for _, kv := range kvs {
		b.WriteString(kv.Key)
		b.WriteString(": ")
		b.WriteString(kv.Value)
		b.WriteString("\n")
	}
	return b.String()
}
