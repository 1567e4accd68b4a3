package domain

// Status is the result class of one attempted mutation.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// MutationResult is the raw answer to a mutation request. A non-2xx status is
// not a transport error; it is carried here so the caller can log and continue.
type MutationResult struct {
	// Status is the HTTP status code returned by the service.
	Status int

	// Body is the raw response body, kept only for failures.
	Body string
}

// OK reports whether the service accepted the mutation.
func (r MutationResult) OK() bool {
	return r.Status/100 == 2
}

// Failure converts a rejected result into a MutationFailure.
// It returns nil when the result is OK.
func (r MutationResult) Failure() *MutationFailure {
	if r.OK() {
		return nil
	}
	return &MutationFailure{Status: r.Status, Body: r.Body}
}

// Outcome records one attempted mutation. Outcomes are appended, never rewritten.
type Outcome struct {
	RecordID   RecordID
	Status     Status
	HTTPStatus int
	Detail     string
}

// Succeeded reports whether the mutation was accepted.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}
