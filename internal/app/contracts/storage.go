package contracts

import (
	"context"
	"time"
)

// DocumentStorage offloads inline document attachments to object storage
// so the caller receives a short-lived link instead of megabytes of base64.
type DocumentStorage interface {
	UploadBase64Document(ctx context.Context, encodedData []byte, bucketName, objectName, contentType string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
