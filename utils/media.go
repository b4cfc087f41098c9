package utils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nfnt/resize"

	"glowstore/backend/config"
)

const (
	maxFileSize       = 5 * 1024 * 1024
	compressThreshold = 100 * 1024
	mainImageWidth    = 800
	previewSize       = 300
)

var s3Client *minio.Client

// InitS3 connects the media uploader to the configured S3-compatible
// endpoint. Called once from main after config.Load.
func InitS3() error {
	client, err := minio.New(config.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.S3AccessKey, config.S3SecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %v", err)
	}
	s3Client = client
	return nil
}

// SaveProductPhotoToS3 uploads a product photo plus a small preview and
// returns their CDN URLs. Images over the compression threshold are
// resized and re-encoded as JPEG before upload.
func SaveProductPhotoToS3(ctx context.Context, file *multipart.FileHeader, productID string) (string, string, error) {
	if s3Client == nil {
		return "", "", fmt.Errorf("S3 client not initialized")
	}
	if file.Size > maxFileSize {
		return "", "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", "", fmt.Errorf("unsupported file format: %s", contentType)
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	baseName := fmt.Sprintf("products/%s_%d", productID, time.Now().Unix())
	mainFilename := fmt.Sprintf("%s%s", baseName, fileExt)
	previewFilename := fmt.Sprintf("%s_preview%s", baseName, fileExt)

	srcFile, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	originalData, err := io.ReadAll(srcFile)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image data: %v", err)
	}
	srcReader := bytes.NewReader(originalData)

	var img image.Image
	if contentType == "image/png" {
		img, err = png.Decode(srcReader)
	} else {
		img, err = jpeg.Decode(srcReader)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	var bufMain bytes.Buffer
	if file.Size >= compressThreshold {
		resizedMain := resize.Resize(mainImageWidth, 0, img, resize.Lanczos3)
		if err := jpeg.Encode(&bufMain, resizedMain, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to encode resized image: %v", err)
		}
	} else {
		bufMain.Write(originalData)
	}

	_, err = s3Client.PutObject(ctx, config.S3Bucket, mainFilename, &bufMain, int64(bufMain.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload main image to S3: %v", err)
	}

	previewImg := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)
	var bufPreview bytes.Buffer
	if err := jpeg.Encode(&bufPreview, previewImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", "", fmt.Errorf("failed to encode preview image: %v", err)
	}
	_, err = s3Client.PutObject(ctx, config.S3Bucket, previewFilename, &bufPreview, int64(bufPreview.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload preview image to S3: %v", err)
	}

	mainURL := fmt.Sprintf("https://%s/%s", config.CDNDomain, mainFilename)
	previewURL := fmt.Sprintf("https://%s/%s", config.CDNDomain, previewFilename)
	return mainURL, previewURL, nil
}
