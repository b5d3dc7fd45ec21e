// Package publish uploads rendered documents to object storage.
package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// ObjectPutter is the subset of the S3 client used by the publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads rendered documents to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	pub := publish.New(s3.NewFromConfig(cfg), "my-bucket", "feeds/")
//	err := pub.PublishDocument(ctx, "catalog.xml", doc, render.DefaultConfig())
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// New creates a Publisher writing to the given bucket. All keys are joined
// under prefix (e.g. "feeds/").
func New(client ObjectPutter, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// NewClient builds an S3 client from the default AWS configuration chain
// (environment, shared config, instance metadata).
func NewClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("publish: load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Publish uploads already-rendered content under the given key.
func (p *Publisher) Publish(ctx context.Context, key, content string) error {
	fullKey := p.prefix + strings.TrimPrefix(key, "/")

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(fullKey),
		Body:        strings.NewReader(content),
		ContentType: aws.String("application/xml"),
	})
	if err != nil {
		return fmt.Errorf("publish: put %s: %w", fullKey, err)
	}
	return nil
}

// PublishDocument renders the document with the given configuration and
// uploads the result under key.
func (p *Publisher) PublishDocument(ctx context.Context, key string, root *xmldoc.Element, config render.Config) error {
	out, err := render.NewRenderer(config).RenderToString(root)
	if err != nil {
		return fmt.Errorf("publish: render %s: %w", key, err)
	}
	return p.Publish(ctx, key, out)
}
