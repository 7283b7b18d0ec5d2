// Package audit implements the opt-in tamper-evident verdict log: an
// append-only JSONL file where each line carries the SHA-256 of the
// previous line.
package audit

// Entry is one verdict in the hash-chained JSONL audit log. All fields are
// scalars (no map[string]any) so json.Marshal field order is deterministic
// and the chain hashes reproduce.
type Entry struct {
	Timestamp string `json:"ts"`
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Event     string `json:"event"`
	Tool      string `json:"tool,omitempty"`
	Gate      string `json:"gate,omitempty"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
	PrevHash  string `json:"prev_hash"`
}
