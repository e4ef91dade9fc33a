package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Precios y valores como número JSON (2.5), igual que el Float del esquema GraphQL.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateProductRequest entrada para crear un producto. Unit vacío = "pcs".
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description"`
	SKU         string          `json:"sku" validate:"required,max=100"`
	Category    string          `json:"category" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" validate:"gte=0,lte=9999999999.99"`
	Quantity    int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	Unit        string          `json:"unit" validate:"max=20"`
	ImageURL    *string         `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos no nil.
// Description e ImageURL admiten null explícito, que borra el valor guardado.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description NullableString   `json:"description" swaggertype:"string"`
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number" validate:"omitempty,gte=0,lte=9999999999.99"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0,lte=2147483647"`
	Unit        *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	ImageURL    NullableString   `json:"imageUrl" swaggertype:"string" validate:"omitempty,url"`
}

// NullableString distingue un campo ausente (Set=false) de un null explícito (Set=true, Value=nil).
type NullableString struct {
	Value *string
	Set   bool
}

// SetString valor presente.
func SetString(s string) NullableString { return NullableString{Value: &s, Set: true} }

// SetNull null explícito.
func SetNull() NullableString { return NullableString{Set: true} }

// UnmarshalJSON solo se invoca cuando la clave está en el body, también con null.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	ImageURL    *string         `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ImageUploadRequest body para POST /api/products/:id/image-upload.
type ImageUploadRequest struct {
	ContentType string `json:"contentType" validate:"required"`
}

// ImageUploadResponse URL prefirmada para subir la imagen y URL pública resultante.
type ImageUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ImageURL  string    `json:"imageUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
