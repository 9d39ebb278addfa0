package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	User     string
	Password string
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Bus writes each communication as a JSON object into an outbox bucket
// that a delivery worker drains. Keys look like
// <prefix>/<definition>/<yyyy>/<mm>/<dd>/<id>.json.
type S3Bus struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Bus(ctx context.Context, cfg S3Config) (*S3Bus, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.User,
			cfg.Password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Bus(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Bus(client objectPutter, bucket, prefix string) *S3Bus {
	return &S3Bus{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

func (b *S3Bus) key(c *Communication) string {
	d := b.now().UTC()
	return path.Join(b.prefix, c.DefinitionID,
		fmt.Sprintf("%04d/%02d/%02d", d.Year(), d.Month(), d.Day()),
		c.ID+".json")
}

func (b *S3Bus) Publish(ctx context.Context, c *Communication) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode communication: %w", err)
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(c)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	return err
}
