package domain

import "strconv"

// DefaultPageSize is the largest page the vault service hands out per list call.
const DefaultPageSize = 1000

// RecordID identifies a record within one resource. It carries no meaning
// across resources.
type RecordID string

// RecordIDFromInt formats a numeric id.
func RecordIDFromInt(id int64) RecordID {
	return RecordID(strconv.FormatInt(id, 10))
}

// String returns the raw id.
func (id RecordID) String() string {
	return string(id)
}

// PageRequest is one planned list call.
type PageRequest struct {
	Offset int
	Size   int
}

// Page is the server's answer to a PageRequest. Items keep the order the
// server returned them in.
type Page struct {
	Items         []RecordID
	Offset        int
	RequestedSize int
}

// Len returns the number of items on the page.
func (p Page) Len() int {
	return len(p.Items)
}
