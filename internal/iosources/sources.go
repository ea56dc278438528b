// Package iosources checks that S3 locations of the source data exist
// and are not empty before the warehouse is asked to COPY from them.
package iosources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/gnames/dwhetl/pkg/mode"
)

// Lister lists objects in a bucket. *s3.Client implements it.
type Lister interface {
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Compile-time check.
var _ Lister = (*s3.Client)(nil)

// Checker verifies source locations.
type Checker struct {
	lister Lister
}

// New creates a Checker with an S3 client. Static credentials from the
// configuration are used when both key fields are set, otherwise the
// default AWS credential chain applies.
func New(ctx context.Context, src config.SourcesConfig) (*Checker, error) {
	if src.AccessKeyID != "" && src.SecretAccessKey != "" {
		client := s3.New(s3.Options{
			Region: src.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				src.AccessKeyID, src.SecretAccessKey, "",
			),
		})
		return NewWithLister(client), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(src.Region),
	)
	if err != nil {
		return nil, ClientError(err)
	}
	return NewWithLister(s3.NewFromConfig(awsCfg)), nil
}

// NewWithLister creates a Checker on top of any Lister.
func NewWithLister(l Lister) *Checker {
	return &Checker{lister: l}
}

// Paths returns S3 locations a run in the given mode reads from.
func Paths(src config.SourcesConfig, m mode.RunMode) []string {
	switch m {
	case mode.Full:
		return []string{src.LogData, src.SongData, src.LogJSONPath}
	case mode.Test:
		return []string{src.TestLogData, src.TestSongData, src.LogJSONPath}
	default:
		return nil
	}
}

// Check makes sure every location used by the mode has at least one
// object. It stops at the first location that fails.
func (c *Checker) Check(
	ctx context.Context,
	src config.SourcesConfig,
	m mode.RunMode,
) error {
	for _, v := range Paths(src, m) {
		if err := c.checkPath(ctx, v); err != nil {
			return err
		}
		slog.Info("Source location is available", "path", v)
	}
	return nil
}

func (c *Checker) checkPath(ctx context.Context, path string) error {
	bucket, prefix, err := ParseS3Path(path)
	if err != nil {
		return PathError(path, err)
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(1),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	out, err := c.lister.ListObjectsV2(ctx, input)
	if err != nil {
		return CheckError(path, err)
	}
	if len(out.Contents) == 0 {
		return EmptyError(path)
	}
	return nil
}

// ParseS3Path extracts bucket and key prefix from an
// "s3://bucket/path/to/data" URI. The prefix may be empty.
func ParseS3Path(s3Path string) (bucket, prefix string, err error) {
	u, err := url.Parse(s3Path)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", errNotS3(u.Scheme)
	}
	if u.Host == "" {
		return "", "", errNoBucket
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
