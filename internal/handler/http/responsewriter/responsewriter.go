// Package responsewriter provides an http.ResponseWriter wrapper that
// records the status code and the number of bytes written.
package responsewriter

import "net/http"

// Recorder wraps http.ResponseWriter and records status and size.
type Recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

// Wrap returns a Recorder around w with a default status of 200.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code before delegating.
func (r *Recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Write records the number of bytes written before delegating.
func (r *Recorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (r *Recorder) StatusCode() int { return r.status }

// BytesWritten returns the number of response body bytes written.
func (r *Recorder) BytesWritten() int { return r.bytes }
