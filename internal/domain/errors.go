package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDocumentNotReady    = errors.New("document processing has not completed")
	ErrAlreadyProcessing   = errors.New("document is already being processed")
	ErrQueueFull           = errors.New("processing queue is full")
	ErrStorageWrite        = errors.New("file write to storage failed")
)

// DuplicateDocumentError is returned by Submit when identical bytes were
// already uploaded by the same tenant. It carries the existing document ID so
// callers can point at the original record instead of reprocessing.
type DuplicateDocumentError struct {
	ExistingID string
}

func (e *DuplicateDocumentError) Error() string {
	return "document already exists (id " + e.ExistingID + ")"
}
