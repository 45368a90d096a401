package rates

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client the repository uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository stores the series as a CSV object.
type S3Repository struct {
	Client ObjectAPI
	Bucket string
	Key    string
}

// NewS3Repository creates a repository over an existing client.
func NewS3Repository(client ObjectAPI, bucket, key string) *S3Repository {
	return &S3Repository{Client: client, Bucket: bucket, Key: key}
}

// NewS3RepositoryFromSettings loads AWS configuration for the settings region.
// A non-empty Endpoint routes requests to an S3-compatible service with path-style addressing.
func NewS3RepositoryFromSettings(ctx context.Context, st domain.RateStoreSettings) (*S3Repository, error) {
	if st.Bucket == "" || st.Key == "" {
		return nil, fmt.Errorf("s3 rate store needs both bucket and key")
	}

	var opts []func(*awsCfg.LoadOptions) error
	if st.Region != "" {
		opts = append(opts, awsCfg.WithRegion(st.Region))
	}
	cfg, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if st.Endpoint != "" {
			o.BaseEndpoint = aws.String(st.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Repository(client, st.Bucket, st.Key), nil
}

func (r *S3Repository) Name() string { return "s3://" + r.Bucket + "/" + r.Key }

// Load fetches and parses the object. A missing object is ErrNoData.
func (r *S3Repository) Load(ctx context.Context) ([]domain.RatePoint, error) {
	out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(r.Key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.Name(), err)
	}
	defer out.Body.Close()
	return ReadCSV(out.Body)
}

// Save uploads the series as text/csv.
func (r *S3Repository) Save(ctx context.Context, points []domain.RatePoint) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, points); err != nil {
		return err
	}
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Bucket),
		Key:         aws.String(r.Key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", r.Name(), err)
	}
	return nil
}

// NewRepository selects the backend named in the settings.
func NewRepository(ctx context.Context, st domain.RateStoreSettings) (Repository, error) {
	switch st.Backend {
	case "", "file":
		if st.Path == "" {
			return nil, fmt.Errorf("file rate store needs a path")
		}
		return NewCSVFileRepository(st.Path), nil
	case "s3":
		return NewS3RepositoryFromSettings(ctx, st)
	}
	return nil, fmt.Errorf("unknown rate store backend %q", st.Backend)
}
