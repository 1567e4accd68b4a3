// Package domain contains the core domain entities and value objects for vaultsweep.
//
// This package has no dependencies on infrastructure concerns (HTTP, file system,
// logging) and contains only the vocabulary shared by the sweeper and its adapters.
//
// # Entities
//
//   - [Resource]: A record family inside a vault (batches, samples, files, ELN entries)
//   - [Verb]: The mutation applied to one record (remove, detach, transition)
//   - [RecordID]: An opaque, resource-scoped record identifier
//   - [Page] and [PageRequest]: One slice of a paginated listing
//   - [Outcome]: The result of one attempted mutation
//
// # Errors
//
// Failures crossing the package boundary are typed ([AuthError], [TransportError],
// [UnexpectedResponseError], [MutationFailure], [PageFetchError]) or sentinel values,
// and are checked with errors.Is / errors.As.
package domain
