package handlers

import (
	"context"
	"mime/multipart"
	"os"
)

// storeUpload routes an uploaded binary to the appropriate backend based on
// environment. Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or K_SERVICE
// (Cloud Run); everywhere else files land on local disk under ./uploads.
func storeUpload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		return storeUploadGCS(ctx, file, header)
	}
	return storeUploadLocal(file, header)
}
