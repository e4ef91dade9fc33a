package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/commodities-api/internal/application/ports"
	"github.com/jhoicas/commodities-api/pkg/config"
)

var _ ports.ImageStorage = (*S3Storage)(nil)

// presignPutObject punto de inyección para tests.
var presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return pc.PresignPutObject(ctx, in, optFns...)
}

// S3Storage firma subidas de imágenes contra S3 o un endpoint compatible (MinIO).
type S3Storage struct {
	presign       *s3.PresignClient
	bucket        string
	expires       time.Duration
	publicBaseURL string
	now           func() time.Time
}

// NewS3Storage carga la configuración AWS (credenciales estáticas si hay access key) y
// construye el cliente de firmado. No hace llamadas de red.
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: cargar configuración: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	expires := time.Duration(cfg.PresignMinutes) * time.Minute
	if expires <= 0 {
		expires = 15 * time.Minute
	}
	return &S3Storage{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		expires:       expires,
		publicBaseURL: publicBase(cfg),
		now:           time.Now,
	}, nil
}

// PresignUpload firma un PUT con el content type fijado; el cliente debe enviar el mismo header.
func (s *S3Storage) PresignUpload(ctx context.Context, key, contentType string) (*ports.PresignedUpload, error) {
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return nil, fmt.Errorf("s3: firmar PUT: %w", err)
	}
	return &ports.PresignedUpload{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: s.now().Add(s.expires).UTC(),
	}, nil
}

// PublicURL base pública + key, con cada segmento escapado.
func (s *S3Storage) PublicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.publicBaseURL + "/" + strings.Join(parts, "/")
}

// publicBase S3_PUBLIC_BASE_URL si existe; si no, endpoint/bucket o la URL virtual-host de AWS.
func publicBase(cfg config.S3Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
