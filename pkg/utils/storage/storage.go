package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const MaxFileSize = 25 * 1024 * 1024 // 25MB

var allowedTypes = map[string]bool{
	"application/pdf":              true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// S3Storage sube los archivos de recursos (PDF/ZIP) que luego se entregan
// por email como urlRecurso.
type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func New(ctx context.Context, bucket, region string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// UploadResourceAsset valida y sube el archivo, y devuelve su URL pública.
func (s *S3Storage) UploadResourceAsset(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxFileSize {
		return "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("invalid file type. Allowed types are: pdf, zip")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := fmt.Sprintf("recursos/%d_%s", time.Now().Unix(), filepath.Base(file.Filename))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload file: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
