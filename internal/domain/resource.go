package domain

import "fmt"

// Verb names the mutation applied to a single record.
type Verb string

const (
	// VerbRemove hard-deletes the record.
	VerbRemove Verb = "remove"

	// VerbDetach clears the record's project associations. Used for batches,
	// which cannot be hard-deleted through the API.
	VerbDetach Verb = "detach"

	// VerbTransition changes the record's status (ELN discard).
	VerbTransition Verb = "transition"
)

// Valid reports whether v is a known verb.
func (v Verb) Valid() bool {
	switch v {
	case VerbRemove, VerbDetach, VerbTransition:
		return true
	}
	return false
}

// Resource describes a record family inside a vault and how the service
// expects it to be listed.
type Resource struct {
	// Name is the human label used in log lines ("batch", "sample").
	Name string

	// Path is the collection path below /vaults/{id}/ (e.g. "eln/entries").
	Path string

	// OnlyIDs asks list endpoints to return bare ids instead of full objects.
	OnlyIDs bool
}

// String returns the collection path.
func (r Resource) String() string {
	return r.Path
}

// Known resources.
var (
	ResourceFiles = Resource{Name: "file", Path: "files"}

	ResourceBatches = Resource{Name: "batch", Path: "batches", OnlyIDs: true}

	// Inventory samples are listed as full objects; ids are read from each
	// object's "id" field.
	ResourceSamples = Resource{Name: "sample", Path: "inventory_samples"}

	ResourceELNEntries = Resource{Name: "ELN entry", Path: "eln/entries", OnlyIDs: true}
)

// ItemPath returns the path of a single record relative to the vault root.
func (r Resource) ItemPath(id RecordID) string {
	return fmt.Sprintf("%s/%s", r.Path, id)
}
