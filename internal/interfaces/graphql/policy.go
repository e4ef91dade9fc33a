package graphql

import (
	"context"
	"fmt"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// Operaciones raíz del esquema.
const (
	opRegister                  = "register"
	opLogin                     = "login"
	opMe                        = "me"
	opProducts                  = "products"
	opProduct                   = "product"
	opCreateProduct             = "createProduct"
	opUpdateProduct             = "updateProduct"
	opDeleteProduct             = "deleteProduct"
	opDashboardStats            = "dashboardStats"
	opRequestProductImageUpload = "requestProductImageUpload"
)

// operationPolicies tabla única de control de acceso por operación. Una operación
// que no aparece aquí se rechaza.
var operationPolicies = map[string]auth.Policy{
	opRegister:                  auth.PublicPolicy(),
	opLogin:                     auth.PublicPolicy(),
	opMe:                        auth.AuthenticatedPolicy(),
	opProducts:                  auth.AuthenticatedPolicy(),
	opProduct:                   auth.AuthenticatedPolicy(),
	opCreateProduct:             auth.AuthenticatedPolicy(),
	opUpdateProduct:             auth.AuthenticatedPolicy(),
	opRequestProductImageUpload: auth.AuthenticatedPolicy(),
	opDeleteProduct:             auth.AuthenticatedPolicy(entity.RoleManager),
	opDashboardStats:            auth.AuthenticatedPolicy(entity.RoleManager),
}

type authorizationKey struct{}

// WithAuthorization guarda el header Authorization crudo para el guard.
func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationKey{}, header)
}

func authorizationFrom(ctx context.Context) string {
	h, _ := ctx.Value(authorizationKey{}).(string)
	return h
}

// authorize aplica la política de op a la petición. Devuelve la identidad (nil en operaciones públicas).
func (r *Resolver) authorize(ctx context.Context, op string) (*auth.Identity, error) {
	policy, ok := operationPolicies[op]
	if !ok {
		return nil, fmt.Errorf("operación %q sin política de acceso: %w", op, domain.ErrForbidden)
	}
	return r.guard.Check(authorizationFrom(ctx), policy)
}
