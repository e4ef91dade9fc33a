package graphql

import (
	"fmt"
	"math"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
)

// toInt32 rechaza valores fuera del rango de Int de GraphQL en lugar de truncarlos.
func toInt32(field string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &gqlError{
			code:    errcode.Internal,
			message: fmt.Sprintf("%s fuera del rango de Int (32 bits): %d", field, v),
		}
	}
	return int32(v), nil
}

type userResolver struct{ u *dto.UserResponse }

func (r *userResolver) ID() graphql.ID      { return graphql.ID(r.u.ID) }
func (r *userResolver) Email() string       { return r.u.Email }
func (r *userResolver) Name() string        { return r.u.Name }
func (r *userResolver) Role() string        { return r.u.Role }
func (r *userResolver) CreatedAt() DateTime { return DateTime{r.u.CreatedAt} }
func (r *userResolver) UpdatedAt() DateTime { return DateTime{r.u.UpdatedAt} }

type authPayloadResolver struct{ a *dto.AuthResponse }

func (r *authPayloadResolver) AccessToken() string { return r.a.AccessToken }
func (r *authPayloadResolver) User() *userResolver { return &userResolver{u: &r.a.User} }

type productResolver struct{ p *dto.ProductResponse }

func (r *productResolver) ID() graphql.ID      { return graphql.ID(r.p.ID) }
func (r *productResolver) Name() string         { return r.p.Name }
func (r *productResolver) Description() *string { return r.p.Description }
func (r *productResolver) SKU() string          { return r.p.SKU }
func (r *productResolver) Category() string     { return r.p.Category }
func (r *productResolver) Price() float64       { return r.p.Price.InexactFloat64() }
func (r *productResolver) Quantity() (int32, error) {
	return toInt32("quantity", r.p.Quantity)
}
func (r *productResolver) Unit() string         { return r.p.Unit }
func (r *productResolver) ImageURL() *string    { return r.p.ImageURL }
func (r *productResolver) CreatedAt() DateTime  { return DateTime{r.p.CreatedAt} }
func (r *productResolver) UpdatedAt() DateTime  { return DateTime{r.p.UpdatedAt} }

type categoryStatResolver struct{ c dto.CategoryStatDTO }

func (r *categoryStatResolver) Category() string    { return r.c.Category }
func (r *categoryStatResolver) Count() (int32, error) {
	return toInt32("count", r.c.Count)
}
func (r *categoryStatResolver) TotalValue() float64 { return r.c.TotalValue.InexactFloat64() }

type dashboardStatsResolver struct{ s *dto.DashboardStatsDTO }

func (r *dashboardStatsResolver) TotalProducts() (int32, error) {
	return toInt32("totalProducts", r.s.TotalProducts)
}
func (r *dashboardStatsResolver) TotalQuantity() (int32, error) {
	return toInt32("totalQuantity", r.s.TotalQuantity)
}
func (r *dashboardStatsResolver) TotalInventoryValue() float64 {
	return r.s.TotalInventoryValue.InexactFloat64()
}
func (r *dashboardStatsResolver) LowStockCount() (int32, error) {
	return toInt32("lowStockCount", r.s.LowStockCount)
}
func (r *dashboardStatsResolver) CategoriesCount() (int32, error) {
	return toInt32("categoriesCount", r.s.CategoriesCount)
}
func (r *dashboardStatsResolver) CategoryBreakdown() []*categoryStatResolver {
	out := make([]*categoryStatResolver, len(r.s.CategoryBreakdown))
	for i, c := range r.s.CategoryBreakdown {
		out[i] = &categoryStatResolver{c: c}
	}
	return out
}

type imageUploadResolver struct{ u *dto.ImageUploadResponse }

func (r *imageUploadResolver) UploadURL() string   { return r.u.UploadURL }
func (r *imageUploadResolver) ImageURL() string    { return r.u.ImageURL }
func (r *imageUploadResolver) ExpiresAt() DateTime { return DateTime{r.u.ExpiresAt} }
