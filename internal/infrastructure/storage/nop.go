package storage

import (
	"context"
	"fmt"
	"time"
)

// NopArchive is a DocumentStore that drops uploads. Used when object
// storage is not configured; documents are still streamed to the caller,
// they just are not archived.
type NopArchive struct{}

// UploadDocument discards the document
func (NopArchive) UploadDocument(ctx context.Context, objectName string, data []byte, contentType string) error {
	return nil
}

// DocumentURL always fails; nothing is archived
func (NopArchive) DocumentURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "", fmt.Errorf("document archive is not configured")
}
