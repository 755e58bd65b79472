package model

// FetchStatus classifies the outcome of a single artifact acquisition.
type FetchStatus string

const (
	// FetchStatusFull indicates a complete transfer with no prior cache entry.
	FetchStatusFull FetchStatus = "full"
	// FetchStatusResumed indicates the transfer continued a partial cache entry.
	FetchStatusResumed FetchStatus = "resumed"
	// FetchStatusAlreadyComplete indicates the cache entry already held the
	// whole artifact and no bytes were transferred.
	FetchStatusAlreadyComplete FetchStatus = "already-complete"
)

// FetchResult describes the outcome of fetching one artifact.
type FetchResult struct {
	// Path is the materialized file inside the definition.
	Path string

	// Status reports how the artifact was acquired.
	Status FetchStatus

	// BytesTransferred is the number of bytes transferred by this call,
	// not the cumulative artifact size.
	BytesTransferred int64

	// ResumedFrom is the byte offset the transfer continued from, zero for
	// full downloads.
	ResumedFrom int64
}
