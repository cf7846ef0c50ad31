package kit

// ErrorResult is the errors-only response shape for terminal failures:
// the operation could not produce a payload, only a contract error string.
type ErrorResult struct {
	Error string `json:"error"`
}
