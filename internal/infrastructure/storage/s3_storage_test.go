package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-api/pkg/config"
)

func minioConfig() config.S3Config {
	return config.S3Config{
		Bucket:         "products",
		Region:         "us-east-1",
		Endpoint:       "http://127.0.0.1:9000",
		AccessKey:      "minioadmin",
		SecretKey:      "minioadmin",
		UsePathStyle:   true,
		PresignMinutes: 10,
	}
}

func TestPresignUpload_MinIO(t *testing.T) {
	s, err := NewS3Storage(context.Background(), minioConfig())
	require.NoError(t, err)

	before := time.Now()
	up, err := s.PresignUpload(context.Background(), "products/abc/basmati-rice-1234abcd.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(up.URL)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/products/products/abc/basmati-rice-1234abcd.png", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "PUT", up.Method)
	assert.WithinDuration(t, before.Add(10*time.Minute), up.ExpiresAt, 5*time.Second)
}

func TestPresignUpload_Error(t *testing.T) {
	s, err := NewS3Storage(context.Background(), minioConfig())
	require.NoError(t, err)

	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	boom := errors.New("boom")
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, boom
	}

	_, err = s.PresignUpload(context.Background(), "k", "image/png")
	assert.ErrorIs(t, err, boom)
}

func TestPublicURL(t *testing.T) {
	cfg := minioConfig()
	s, err := NewS3Storage(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/products/products/a/b%20c.png", s.PublicURL("products/a/b c.png"))

	cfg.PublicBaseURL = "https://cdn.slooz.com/"
	s, err = NewS3Storage(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.slooz.com/products/a/x.png", s.PublicURL("products/a/x.png"))

	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", publicBase(config.S3Config{Bucket: "b", Region: "eu-west-1"}))
}
