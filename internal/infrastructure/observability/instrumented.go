package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

// traced ejecuta fn dentro de un span "repo.<op>" y la mide con ObserveDB.
func traced(ctx context.Context, p *Prom, op string, fn func(ctx context.Context) error) error {
	ctx, span := Tracer().Start(ctx, "repo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.operation", op)),
	)
	defer span.End()

	err := p.ObserveDB(op, func() error { return fn(ctx) })
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository decorador con métricas y trazas sobre un repository.ProductRepository.
type ProductRepository struct {
	next repository.ProductRepository
	prom *Prom
}

// NewProductRepository envuelve next.
func NewProductRepository(next repository.ProductRepository, prom *Prom) *ProductRepository {
	return &ProductRepository{next: next, prom: prom}
}

func (r *ProductRepository) List(ctx context.Context) (out []*entity.Product, err error) {
	err = traced(ctx, r.prom, "products.list", func(ctx context.Context) error {
		out, err = r.next.List(ctx)
		return err
	})
	return out, err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (out *entity.Product, err error) {
	err = traced(ctx, r.prom, "products.get", func(ctx context.Context) error {
		out, err = r.next.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return traced(ctx, r.prom, "products.create", func(ctx context.Context) error {
		return r.next.Create(ctx, p)
	})
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return traced(ctx, r.prom, "products.update", func(ctx context.Context) error {
		return r.next.Update(ctx, p)
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return traced(ctx, r.prom, "products.delete", func(ctx context.Context) error {
		return r.next.Delete(ctx, id)
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository decorador con métricas y trazas sobre un repository.UserRepository.
type UserRepository struct {
	next repository.UserRepository
	prom *Prom
}

// NewUserRepository envuelve next.
func NewUserRepository(next repository.UserRepository, prom *Prom) *UserRepository {
	return &UserRepository{next: next, prom: prom}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return traced(ctx, r.prom, "users.create", func(ctx context.Context) error {
		return r.next.Create(ctx, u)
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (out *entity.User, err error) {
	err = traced(ctx, r.prom, "users.get", func(ctx context.Context) error {
		out, err = r.next.GetByID(ctx, id)
		return err
	})
	return out, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (out *entity.User, err error) {
	err = traced(ctx, r.prom, "users.get_by_email", func(ctx context.Context) error {
		out, err = r.next.GetByEmail(ctx, email)
		return err
	})
	return out, err
}
