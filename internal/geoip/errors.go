package geoip

// LookupError is the tagged failure value for geo-IP lookups.
// Message is what gets shown to the user; Err (optional) is the underlying
// cause kept for logging and errors.Is/As chains.
//
// Three sources produce it:
//   - the provider answered with status "fail" (Message is the provider's
//     own text, Err is nil)
//   - the HTTP request itself failed (timeout, DNS, connection refused)
//   - the response could not be decoded
type LookupError struct {
	Message string // user-facing failure text
	Err     error  // underlying error, nil for provider-reported failures
}

// Error implements the error interface
func (e *LookupError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e *LookupError) Unwrap() error {
	return e.Err
}
