package graphql

import (
	"context"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/application/validation"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// Deps dependencias del resolver raíz.
type Deps struct {
	AuthUC      *auth.AuthUseCase
	Guard       *auth.Guard
	ProductUC   *usecase.ProductUseCase
	ImageUC     *usecase.ImageUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Log         *logger.Logger
	Prom        *observability.Prom
}

// Resolver raíz de Query y Mutation.
type Resolver struct {
	auth      *auth.AuthUseCase
	guard     *auth.Guard
	products  *usecase.ProductUseCase
	images    *usecase.ImageUseCase
	dashboard *appanalytics.DashboardUseCase
	log       *logger.Logger
	prom      *observability.Prom
}

// NewResolver construye el resolver raíz.
func NewResolver(d Deps) *Resolver {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		auth:      d.AuthUC,
		guard:     d.Guard,
		products:  d.ProductUC,
		images:    d.ImageUC,
		dashboard: d.DashboardUC,
		log:       log.Named("graphql"),
		prom:      d.Prom,
	}
}

// resolve ejecuta una operación raíz: span, política de acceso, caso de uso y
// traducción del error a extensions.code.
func resolve[T any](ctx context.Context, r *Resolver, op string, fn func(ctx context.Context, identity *auth.Identity) (T, error)) (T, error) {
	ctx, span := observability.Tracer().Start(ctx, "graphql."+op)
	defer span.End()
	span.SetAttributes(attribute.String("graphql.operation", op))

	identity, err := r.authorize(ctx, op)
	if err == nil {
		ctx = auth.WithIdentity(ctx, identity)
		var out T
		if out, err = fn(ctx, identity); err == nil {
			r.prom.ObserveGraphQL(op, "ok")
			return out, nil
		}
	}

	var zero T
	gerr := newError(err)
	if gerr.code == errcode.Internal {
		r.log.Error().Err(err).Str("operation", op).Msg("error no controlado")
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, gerr.code)
	r.prom.ObserveGraphQL(op, strings.ToLower(gerr.code))
	return zero, gerr
}

// ── Query ─────────────────────────────────────────────────────────────────────

// Me usuario autenticado.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	return resolve(ctx, r, opMe, func(ctx context.Context, id *auth.Identity) (*userResolver, error) {
		u, err := r.auth.Me(ctx, id.UserID)
		if err != nil {
			return nil, err
		}
		return &userResolver{u: u}, nil
	})
}

// Products todos los productos, más recientes primero.
func (r *Resolver) Products(ctx context.Context) ([]*productResolver, error) {
	return resolve(ctx, r, opProducts, func(ctx context.Context, _ *auth.Identity) ([]*productResolver, error) {
		list, err := r.products.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*productResolver, len(list))
		for i := range list {
			out[i] = &productResolver{p: &list[i]}
		}
		return out, nil
	})
}

// Product un producto por id.
func (r *Resolver) Product(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	return resolve(ctx, r, opProduct, func(ctx context.Context, _ *auth.Identity) (*productResolver, error) {
		p, err := r.products.GetByID(ctx, string(args.ID))
		if err != nil {
			return nil, err
		}
		return &productResolver{p: p}, nil
	})
}

// DashboardStats estadísticas del inventario (solo MANAGER).
func (r *Resolver) DashboardStats(ctx context.Context) (*dashboardStatsResolver, error) {
	return resolve(ctx, r, opDashboardStats, func(ctx context.Context, _ *auth.Identity) (*dashboardStatsResolver, error) {
		s, err := r.dashboard.GetStats(ctx)
		if err != nil {
			return nil, err
		}
		return &dashboardStatsResolver{s: s}, nil
	})
}

// ── Mutation ──────────────────────────────────────────────────────────────────

type registerInput struct {
	Name     string
	Email    string
	Password string
	Role     string // default STORE_KEEPER en el esquema
}

// Register crea una cuenta y devuelve token + usuario.
func (r *Resolver) Register(ctx context.Context, args struct{ RegisterInput registerInput }) (*authPayloadResolver, error) {
	return resolve(ctx, r, opRegister, func(ctx context.Context, _ *auth.Identity) (*authPayloadResolver, error) {
		in := dto.RegisterRequest{
			Name:     args.RegisterInput.Name,
			Email:    args.RegisterInput.Email,
			Password: args.RegisterInput.Password,
			Role:     args.RegisterInput.Role,
		}
		if err := validation.Struct(in); err != nil {
			r.prom.ObserveAuth(opRegister, "bad_user_input")
			return nil, err
		}
		out, err := r.auth.Register(ctx, in)
		r.observeAuth(opRegister, err)
		if err != nil {
			return nil, err
		}
		return &authPayloadResolver{a: out}, nil
	})
}

type loginInput struct {
	Email    string
	Password string
}

// Login autentica por email y password.
func (r *Resolver) Login(ctx context.Context, args struct{ LoginInput loginInput }) (*authPayloadResolver, error) {
	return resolve(ctx, r, opLogin, func(ctx context.Context, _ *auth.Identity) (*authPayloadResolver, error) {
		in := dto.LoginRequest{Email: args.LoginInput.Email, Password: args.LoginInput.Password}
		if err := validation.Struct(in); err != nil {
			r.prom.ObserveAuth(opLogin, "bad_user_input")
			return nil, err
		}
		out, err := r.auth.Login(ctx, in)
		r.observeAuth(opLogin, err)
		if err != nil {
			return nil, err
		}
		return &authPayloadResolver{a: out}, nil
	})
}

type createProductInput struct {
	Name        string
	Description *string
	SKU         string
	Category    string
	Price       float64
	Quantity    int32
	Unit        string // default "pcs" en el esquema
	ImageURL    *string
}

// CreateProduct crea un producto.
func (r *Resolver) CreateProduct(ctx context.Context, args struct{ Input createProductInput }) (*productResolver, error) {
	return resolve(ctx, r, opCreateProduct, func(ctx context.Context, _ *auth.Identity) (*productResolver, error) {
		in := dto.CreateProductRequest{
			Name:        args.Input.Name,
			Description: args.Input.Description,
			SKU:         args.Input.SKU,
			Category:    args.Input.Category,
			Price:       decimal.NewFromFloat(args.Input.Price),
			Quantity:    int(args.Input.Quantity),
			Unit:        args.Input.Unit,
			ImageURL:    args.Input.ImageURL,
		}
		if err := validation.Struct(in); err != nil {
			return nil, err
		}
		p, err := r.products.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return &productResolver{p: p}, nil
	})
}

type updateProductInput struct {
	ID          graphql.ID
	Name        *string
	Description graphql.NullString
	SKU         *string
	Category    *string
	Price       *float64
	Quantity    *int32
	Unit        *string
	ImageURL    graphql.NullString
}

// UpdateProduct actualización parcial: solo los campos presentes. description e imageUrl
// con null explícito se borran.
func (r *Resolver) UpdateProduct(ctx context.Context, args struct{ Input updateProductInput }) (*productResolver, error) {
	return resolve(ctx, r, opUpdateProduct, func(ctx context.Context, _ *auth.Identity) (*productResolver, error) {
		in := dto.UpdateProductRequest{
			Name:        args.Input.Name,
			Description: nullable(args.Input.Description),
			SKU:         args.Input.SKU,
			Category:    args.Input.Category,
			Unit:        args.Input.Unit,
			ImageURL:    nullable(args.Input.ImageURL),
		}
		if args.Input.Price != nil {
			price := decimal.NewFromFloat(*args.Input.Price)
			in.Price = &price
		}
		if args.Input.Quantity != nil {
			q := int(*args.Input.Quantity)
			in.Quantity = &q
		}
		if err := validation.Struct(in); err != nil {
			return nil, err
		}
		p, err := r.products.Update(ctx, string(args.Input.ID), in)
		if err != nil {
			return nil, err
		}
		return &productResolver{p: p}, nil
	})
}

// DeleteProduct elimina y devuelve el producto (solo MANAGER).
func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	return resolve(ctx, r, opDeleteProduct, func(ctx context.Context, _ *auth.Identity) (*productResolver, error) {
		p, err := r.products.Delete(ctx, string(args.ID))
		if err != nil {
			return nil, err
		}
		return &productResolver{p: p}, nil
	})
}

// RequestProductImageUpload URL prefirmada para subir la imagen de un producto.
func (r *Resolver) RequestProductImageUpload(ctx context.Context, args struct {
	ProductID   graphql.ID
	ContentType string
}) (*imageUploadResolver, error) {
	return resolve(ctx, r, opRequestProductImageUpload, func(ctx context.Context, _ *auth.Identity) (*imageUploadResolver, error) {
		out, err := r.images.RequestUpload(ctx, string(args.ProductID), args.ContentType)
		if err != nil {
			return nil, err
		}
		return &imageUploadResolver{u: out}, nil
	})
}

func (r *Resolver) observeAuth(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(newError(err).code)
	}
	r.prom.ObserveAuth(op, outcome)
}

func nullable(s graphql.NullString) dto.NullableString {
	return dto.NullableString{Value: s.Value, Set: s.Set}
}
