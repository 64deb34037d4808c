// Package faults defines the tagged failure variants that the HTTP error
// classifier normalizes into response envelopes. Failures are constructed
// at their point of origin and propagate unmodified to the single
// classification boundary; no intermediate layer is expected to wrap or
// rethrow them.
package faults

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Fault is a structured, client-facing failure carrying an explicit HTTP
// status and category. Guard denials, login mismatches and not-found
// conditions are all Faults.
type Fault struct {
	Status   int
	Category string
	Messages []string
}

func (f *Fault) Error() string {
	return f.Message()
}

// Message joins multi-part messages with ":".
func (f *Fault) Message() string {
	return strings.Join(f.Messages, ":")
}

func newFault(status int, category string, messages []string) *Fault {
	return &Fault{
		Status:   status,
		Category: category,
		Messages: messages,
	}
}

// Unauthorized marks a request with a missing, invalid, expired or revoked
// token.
func Unauthorized(messages ...string) *Fault {
	return newFault(http.StatusUnauthorized, "Unauthorized", messages)
}

// Forbidden marks an authenticated request whose role does not satisfy the
// route policy.
func Forbidden(messages ...string) *Fault {
	return newFault(http.StatusForbidden, "Forbidden", messages)
}

// BadRequest marks a client-caused condition such as malformed input or a
// login mismatch.
func BadRequest(messages ...string) *Fault {
	return newFault(http.StatusBadRequest, "Bad Request", messages)
}

// NotFound marks a reference to an absent entity.
func NotFound(messages ...string) *Fault {
	return newFault(http.StatusNotFound, "Not Found", messages)
}

// TooManyRequests marks a throttled request.
func TooManyRequests(messages ...string) *Fault {
	return newFault(http.StatusTooManyRequests, "Too Many Requests", messages)
}

// CastFault is a data-layer condition raised when a malformed identifier or
// value is addressed to a field.
type CastFault struct {
	Field string
	Value string
}

func (f *CastFault) Error() string {
	return fmt.Sprintf("Invalid %s: %s.", f.Field, f.Value)
}

// DuplicateKeyFault is a data-layer uniqueness conflict carrying the
// conflicting field/value pairs.
type DuplicateKeyFault struct {
	Keys map[string]string
}

func (f *DuplicateKeyFault) Error() string {
	return f.Message()
}

// Message concatenates a "duplicate <field> code <value>" segment per
// conflicting field, with no separator. Fields are visited in sorted order
// so the message is deterministic.
func (f *DuplicateKeyFault) Message() string {
	fields := make([]string, 0, len(f.Keys))
	for field := range f.Keys {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&b, "duplicate %s code %s", field, f.Keys[field])
	}
	return b.String()
}
