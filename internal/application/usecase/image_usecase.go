package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/ports"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

// imageExtensions content types aceptados para imágenes de producto.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ImageUseCase firma subidas de imágenes de producto. storage nil = funcionalidad deshabilitada.
type ImageUseCase struct {
	products repository.ProductRepository
	storage  ports.ImageStorage
}

// NewImageUseCase construye el caso de uso.
func NewImageUseCase(products repository.ProductRepository, storage ports.ImageStorage) *ImageUseCase {
	return &ImageUseCase{products: products, storage: storage}
}

// RequestUpload devuelve una URL prefirmada para subir la imagen del producto y la URL pública
// resultante. El cliente luego guarda imageUrl con updateProduct.
func (uc *ImageUseCase) RequestUpload(ctx context.Context, productID, contentType string) (*dto.ImageUploadResponse, error) {
	if uc.storage == nil {
		return nil, domain.NewValidationError("storage", "configured", "almacenamiento de imágenes no configurado")
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, domain.NewValidationError("contentType", "oneof", "debe ser image/jpeg, image/png, image/webp o image/gif")
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("imágenes: buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	key := ObjectKey(product.ID, product.Name, ext)
	signed, err := uc.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("imágenes: firmar subida: %w", err)
	}
	return &dto.ImageUploadResponse{
		UploadURL: signed.URL,
		ImageURL:  uc.storage.PublicURL(key),
		ExpiresAt: signed.ExpiresAt,
	}, nil
}

// ObjectKey products/<id>/<slug-del-nombre>-<sufijo>.<ext>; el sufijo evita pisar imágenes anteriores.
func ObjectKey(productID, productName, ext string) string {
	name := slug.Make(productName)
	if name == "" {
		name = "image"
	}
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("products/%s/%s-%s.%s", productID, name, suffix, ext)
}
