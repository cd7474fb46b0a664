package client

import "fmt"

// TransportError reports a non-200 HTTP response from the API.
type TransportError struct {
	URL        string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: received non-200 status code: %d", e.URL, e.StatusCode)
}

// ProtocolError reports a response that arrived over HTTP successfully but
// violates the API's envelope contract: either the body did not decode, or
// the envelope's application-level status was not the success sentinel.
type ProtocolError struct {
	URL    string
	Status int   // envelope status; meaningful only when Err is nil
	Err    error // decode failure; nil for a bad envelope status
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GET %s: failed to unmarshal api response: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("GET %s: API returned non-success status: %d", e.URL, e.Status)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
