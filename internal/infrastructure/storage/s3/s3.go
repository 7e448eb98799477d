// Package s3 stores product images in an S3-compatible bucket (Backblaze B2
// in production) using path-style addressing.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/ohmfruit/fruitstore-service/config"
	circuitbreaker "github.com/ohmfruit/fruitstore-service/internal/infrastructure/circuit-breaker"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/sony/gobreaker/v2"
)

const defaultRegion = "us-east-1"

type objectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client   objectAPI
	bucket   string
	endpoint string
	prefix   string
	cb       *gobreaker.CircuitBreaker[string]
}

func CreateS3Storage(conf config.StorageConfig) (*S3Storage, error) {
	region := conf.Region
	if region == "" {
		region = defaultRegion
	}

	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(region),
		Endpoint:         aws.String(conf.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			conf.AccessKeyID, conf.SecretAccessKey, "",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 session: %w", err)
	}

	return newS3Storage(s3.New(sess), conf), nil
}

func newS3Storage(client objectAPI, conf config.StorageConfig) *S3Storage {
	return &S3Storage{
		client:   client,
		bucket:   conf.Bucket,
		endpoint: strings.TrimRight(conf.Endpoint, "/"),
		prefix:   conf.KeyPrefix,
		cb:       circuitbreaker.CreateCircuitBreaker[string]("object-storage"),
	}
}

// Upload stores body under a fresh key derived from filename and returns the
// public URL of the object.
func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	return s.put(ctx, ObjectKey(s.prefix, filename), contentType, body)
}

func (s *S3Storage) put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.cb.Execute(func() (string, error) {
		_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(body),
			ContentLength: aws.Int64(int64(len(body))),
			ContentType:   aws.String(contentType),
		})
		return "", err
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", errs.ErrStorage, key, err)
	}

	return s.URL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (string, error) {
		_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return "", err
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", errs.ErrStorage, key, err)
	}

	return nil
}

// KeyFromURL recovers the key of an object previously returned by Upload.
func (s *S3Storage) KeyFromURL(url string) (string, bool) {
	return KeyFromURL(url)
}

// URL is <endpoint>/<bucket>/<key>.
func (s *S3Storage) URL(key string) string {
	return s.endpoint + "/" + s.bucket + "/" + key
}

// ObjectKey builds "<prefix>/<ulid>-<base name>".
func ObjectKey(prefix, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "image"
	}

	return prefix + "/" + ulid.Make().String() + "-" + name
}

// KeyFromURL recovers the object key from a stored image URL: the last two
// slash separated segments.
func KeyFromURL(url string) (string, bool) {
	url = strings.TrimRight(url, "/")
	last := strings.LastIndex(url, "/")
	if last <= 0 {
		return "", false
	}

	prev := strings.LastIndex(url[:last], "/")
	if last == prev+1 {
		return "", false
	}

	return url[prev+1:], true
}
