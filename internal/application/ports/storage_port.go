package ports

import (
	"context"
	"time"
)

// PresignedUpload URL prefirmada para un PUT directo al bucket.
type PresignedUpload struct {
	URL       string
	Method    string
	ExpiresAt time.Time
}

// ImageStorage define el puerto de salida para el almacenamiento de imágenes de producto.
// El adaptador concreto (S3, MinIO) firma la subida; el archivo nunca pasa por la API.
type ImageStorage interface {
	// PresignUpload firma un PUT para key con el content type dado.
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)
	// PublicURL URL pública con la que se leerá el objeto una vez subido.
	PublicURL(key string) string
}
