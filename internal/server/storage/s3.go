// Package storage backs the file bridge with an S3-compatible object store
// (MinIO in development). Objects live flat in one bucket under their file
// names; the public URL advertised in listings is PublicFileBase + "/" + name.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/pitwall/paddockpress/internal/server/config"
)

// StoredFile is one object of the bucket listing, in the shape the file
// endpoint advertises. Date is unix seconds.
type StoredFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Date int64  `json:"date"`
}

// FileStore stores and lists media objects.
type FileStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

// New builds a FileStore over the configured S3 backend.
func New(ctx context.Context, c *sc.Config) (*FileStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &FileStore{
		client:     client,
		bucket:     c.S3Bucket,
		publicBase: strings.TrimRight(c.PublicFileBase, "/"),
	}, nil
}

// List returns every object of the bucket. The content type is derived from
// the file extension: object listings do not carry it.
func (fs *FileStore) List(ctx context.Context) ([]StoredFile, error) {
	var files []StoredFile

	paginator := s3.NewListObjectsV2Paginator(fs.client, &s3.ListObjectsV2Input{
		Bucket: &fs.bucket,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", fs.bucket, err)
		}
		for _, obj := range page.Contents {
			name := aws.ToString(obj.Key)
			f := StoredFile{
				Name: name,
				URL:  fs.publicBase + "/" + name,
				Size: aws.ToInt64(obj.Size),
				Type: mime.TypeByExtension(filepath.Ext(name)),
			}
			if obj.LastModified != nil {
				f.Date = obj.LastModified.Unix()
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// Put stores one object under name.
func (fs *FileStore) Put(ctx context.Context, name, contentType string, r io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: &fs.bucket,
		Key:    &name,
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := fs.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

// Delete removes one object by name.
func (fs *FileStore) Delete(ctx context.Context, name string) error {
	if _, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &fs.bucket,
		Key:    &name,
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", name, err)
	}
	return nil
}

// Bucket returns the backing bucket name, used by the debug endpoint.
func (fs *FileStore) Bucket() string { return fs.bucket }
