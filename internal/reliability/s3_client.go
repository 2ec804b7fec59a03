package reliability

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aristath/investa/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// ObjectStore is the subset of the S3 API used for backups
type ObjectStore interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Client stores backup archives in an S3-compatible bucket (AWS, R2, MinIO).
// Object names are relative to the configured prefix.
type S3Client struct {
	api      ObjectStore
	uploader *manager.Uploader
	bucket   string
	prefix   string
	log      zerolog.Logger
}

// NewS3Client builds a client from the backup configuration.
// Static credentials are used when set, otherwise the default AWS chain.
func NewS3Client(ctx context.Context, cfg config.BackupConfig, log zerolog.Logger) (*S3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3ClientWithAPI(api, cfg.Bucket, cfg.Prefix, log), nil
}

// NewS3ClientWithAPI wraps an existing object store API
func NewS3ClientWithAPI(api ObjectStore, bucket, prefix string, log zerolog.Logger) *S3Client {
	return &S3Client{
		api:      api,
		uploader: manager.NewUploader(api),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		log:      log.With().Str("component", "s3_client").Str("bucket", bucket).Logger(),
	}
}

// Bucket returns the target bucket name
func (c *S3Client) Bucket() string {
	return c.bucket
}

func (c *S3Client) key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// Upload streams body to the object called name
func (c *S3Client) Upload(ctx context.Context, name string, body io.Reader) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(c.key(name)),
		Body:        body,
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	c.log.Debug().Str("key", c.key(name)).Msg("Object uploaded")
	return nil
}

// List returns every object whose name starts with namePrefix.
// Returned keys have the client prefix stripped.
func (c *S3Client) List(ctx context.Context, namePrefix string) ([]types.Object, error) {
	keyPrefix := c.key(namePrefix)
	if c.prefix != "" && namePrefix == "" {
		keyPrefix = c.prefix + "/"
	}

	paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(keyPrefix),
	})

	var objects []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*obj.Key, c.prefix+"/")
			if c.prefix == "" {
				name = *obj.Key
			}
			obj.Key = aws.String(name)
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// Delete removes the object called name
func (c *S3Client) Delete(ctx context.Context, name string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}
