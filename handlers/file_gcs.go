package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// storeUploadGCS writes the upload into the configured GCS bucket and
// returns the public object URL. Used in production (Cloud Run).
func storeUploadGCS(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return "", fmt.Errorf("GCS_BUCKET is not set")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("harvest-photos/%s-%s", time.Now().Format("20060102-150405"), header.Filename)

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("upload object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}
