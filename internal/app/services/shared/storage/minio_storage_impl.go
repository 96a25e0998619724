package storage

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.DocumentStorage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadBase64Document(ctx context.Context, encodedData []byte, bucketName, objectName, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		bucketName,
		objectName,
		bytes.NewReader(encodedData),
		int64(len(encodedData)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, reqParams)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return presignedURL.String(), nil
}
