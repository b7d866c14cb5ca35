package constants

// FileStatus is the canonical status for entries in the batch history journal.
type FileStatus string

// Stable values (store these exact strings).
const (
	FileStatusRenamed FileStatus = "RENAMED" // extraction ran and the file was renamed
	FileStatusPlanned FileStatus = "PLANNED" // dry-run: rename computed but not applied
	FileStatusSkipped FileStatus = "SKIPPED" // already processed (content hash seen before)
	FileStatusFailed  FileStatus = "FAILED"  // terminal failure for this file
)
