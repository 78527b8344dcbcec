/*
Package server implements msgpack IPC for word completion services.

The server reads msgpack messages from stdin and writes one msgpack response
per message to stdout. Messages are processed synchronously, one at a time,
with timing info included in completion responses.

# IPC

Every message carries an ID that is echoed back. A message without an
action is a completion request:

	{"id": "req_001", "p": "char", "l": 24}

The server responds with suggestions ranked by weight, heaviest first:

	{"id": "req_001", "s": [{"w": "charizard", "r": 1, "f": 100}, {"w": "charmander", "r": 2, "f": 50}], "c": 2, "t": 38}

"t" is the completion time in microseconds. When the prefix had no matches
and was corrected, "cp" holds the prefix that was searched instead.

Index requests read or change the loaded word set:

	{"id": "idx_001", "action": "count", "p": "char"}
	{"id": "idx_002", "action": "add", "p": "charbon", "w": 70}
	{"id": "idx_003", "action": "stats"}

Failed requests get a CompletionError with an HTTP-like code:

	{"id": "req_002", "e": "prefix exceeds maximum length of 60 characters", "c": 400}
*/
package server

// Index actions.
const (
	ActionCount = "count"
	ActionAdd   = "add"
	ActionStats = "stats"
)

// Request is any inbound message. Action selects the operation; an empty
// Action is a completion request.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Weight int64  `msgpack:"w,omitempty"`
}

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word   string `msgpack:"w"`
	Rank   uint16 `msgpack:"r"`
	Weight int64  `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID              string                 `msgpack:"id"`
	Suggestions     []CompletionSuggestion `msgpack:"s"`
	Count           int                    `msgpack:"c"`
	TimeTaken       int64                  `msgpack:"t"`
	CorrectedPrefix string                 `msgpack:"cp,omitempty"`
}

// IndexRequest - count, add or stats request
type IndexRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Prefix string `msgpack:"p,omitempty"`
	Weight int64  `msgpack:"w,omitempty"`
}

// IndexResponse - index operation response
type IndexResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Count  int            `msgpack:"count"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
