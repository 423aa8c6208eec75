/*
Package server implements msgpack IPC for prefix completion.

The server reads a stream of msgpack encoded Request values from its input
(stdin in prefixserve) and writes one msgpack value per request to its output
(stdout). Logs go to stderr so the stream stays clean.

# IPC

Right after Start the server writes a status message:

	{"status": "ready"}

Every request carries an ID that is echoed back. The Op field picks the
operation, and defaults to "complete" when empty:

	{"id": "req_001", "op": "complete", "p": "one", "k": 2}

Completions come back shortest first, with 1-based ranks in output order and
the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "one", "r": 1}, {"w": "oneapple", "r": 2}], "c": 2, "t": 14}

Word operations use the W field and answer with a WordResponse:

	{"id": "w_1", "op": "contains", "w": "oneapple"}  ->  {"id": "w_1", "ok": true, "sz": 3}
	{"id": "w_2", "op": "delete", "w": "oneapple"}    ->  {"id": "w_2", "ok": true, "sz": 2}
	{"id": "w_3", "op": "load", "w": "two three"}     ->  {"id": "w_3", "ok": true, "sz": 4}
	{"id": "w_4", "op": "size"}                       ->  {"id": "w_4", "ok": true, "sz": 4}

Failures are reported with an ErrorResponse. Code 400 covers bad input (short
or long prefixes, unknown ops, undecodable requests), 500 covers everything else.

# Caching

Completion results are cached per (prefix, k) in an LRU. Any load or delete
purges the cache, since either can change what a prefix matches.
*/
package server

// Supported request operations
const (
	OpComplete = "complete"
	OpContains = "contains"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpSize     = "size"
	OpHealth   = "health"
)

// Request is the single message type accepted by the server
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	K      int    `msgpack:"k,omitempty"` // 0 means the matcher default
	Word   string `msgpack:"w,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// WordResponse answers contains, delete, load and size
type WordResponse struct {
	ID   string `msgpack:"id"`
	OK   bool   `msgpack:"ok"`
	Size int    `msgpack:"sz"`
}

// StatusResponse is sent on startup and for health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
