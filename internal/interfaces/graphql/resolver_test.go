package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/infrastructure/memory"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
	pkgjwt "github.com/jhoicas/commodities-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	schema *graphqlgo.Schema
	store  *memory.Store
	prom   *observability.Prom
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := pkgjwt.NewIssuer(testSecret, "commodities-api-test", 60)
	prom := observability.NewProm(prometheus.NewRegistry())
	r := NewResolver(Deps{
		AuthUC:      auth.NewAuthUseCase(store.Users, security.NewBcryptHasher(bcrypt.MinCost), tokens),
		Guard:       auth.NewGuard(tokens),
		ProductUC:   usecase.NewProductUseCase(store.Products),
		ImageUC:     usecase.NewImageUseCase(store.Products, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Products, nil),
		Prom:        prom,
	})
	schema, err := NewSchema(r, SchemaOptions{Introspection: true})
	require.NoError(t, err)
	return fixture{schema: schema, store: store, prom: prom}
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func (f fixture) exec(t *testing.T, token, query string, vars map[string]interface{}) gqlResponse {
	t.Helper()
	ctx := context.Background()
	if token != "" {
		ctx = WithAuthorization(ctx, "Bearer "+token)
	}
	// Las variables viajan como JSON, igual que desde un cliente HTTP.
	if vars != nil {
		b, err := json.Marshal(vars)
		require.NoError(t, err)
		vars = nil
		require.NoError(t, json.Unmarshal(b, &vars))
	}
	raw, err := json.Marshal(f.schema.Exec(ctx, query, "", vars))
	require.NoError(t, err)
	var out gqlResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (r gqlResponse) code() string {
	if len(r.Errors) == 0 {
		return ""
	}
	c, _ := r.Errors[0].Extensions["code"].(string)
	return c
}

const registerMutation = `mutation($in: RegisterInput!) {
  register(registerInput: $in) { accessToken user { id email name role createdAt } }
}`

func (f fixture) register(t *testing.T, email, role string) (token, id string) {
	t.Helper()
	in := map[string]interface{}{"name": "Test User", "email": email, "password": "password123"}
	if role != "" {
		in["role"] = role
	}
	resp := f.exec(t, "", registerMutation, map[string]interface{}{"in": in})
	require.Empty(t, resp.Errors)
	var payload struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["register"], &payload))
	return payload.AccessToken, payload.User.ID
}

const createProduct = `mutation($in: CreateProductInput!) {
  createProduct(input: $in) { id name sku unit price quantity description imageUrl createdAt }
}`

func (f fixture) create(t *testing.T, token string, in map[string]interface{}) string {
	t.Helper()
	resp := f.exec(t, token, createProduct, map[string]interface{}{"in": in})
	require.Empty(t, resp.Errors)
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["createProduct"], &p))
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Esquema y políticas
// ──────────────────────────────────────────────────────────────────────────────

func TestSchema_TodaOperacionRaizTienePolitica(t *testing.T) {
	f := newFixture(t)
	resp := f.exec(t, "", `{ __schema { queryType { fields { name } } mutationType { fields { name } } } }`, nil)
	require.Empty(t, resp.Errors)

	var s struct {
		QueryType    struct{ Fields []struct{ Name string } } `json:"queryType"`
		MutationType struct{ Fields []struct{ Name string } } `json:"mutationType"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["__schema"], &s))

	var fields []string
	for _, fl := range append(s.QueryType.Fields, s.MutationType.Fields...) {
		fields = append(fields, fl.Name)
	}
	var policies []string
	for op := range operationPolicies {
		policies = append(policies, op)
	}
	sort.Strings(fields)
	sort.Strings(policies)
	if diff := cmp.Diff(policies, fields); diff != "" {
		t.Fatalf("operaciones del esquema vs tabla de políticas (-políticas +esquema):\n%s", diff)
	}
}

func TestAuthorize_OperacionDesconocidaRechazada(t *testing.T) {
	r := NewResolver(Deps{Guard: auth.NewGuard(pkgjwt.NewIssuer(testSecret, "x", 60))})

	_, err := r.authorize(context.Background(), "dropAllProducts")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = resolve(context.Background(), r, "dropAllProducts", func(context.Context, *auth.Identity) (bool, error) {
		t.Fatal("el caso de uso no debe ejecutarse")
		return true, nil
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", newError(err).Extensions()["code"])
}

func TestSinIntrospeccionFueraDeDesarrollo(t *testing.T) {
	schema, err := NewSchema(NewResolver(Deps{}), SchemaOptions{})
	require.NoError(t, err)
	raw, err := json.Marshal(schema.Exec(context.Background(), `{ __schema { queryType { name } } }`, "", nil))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"Query"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterLoginMe(t *testing.T) {
	f := newFixture(t)
	_, id := f.register(t, "keeper@slooz.com", "")

	resp := f.exec(t, "", `mutation { login(loginInput: {email: "keeper@slooz.com", password: "password123"}) { accessToken user { id role } } }`, nil)
	require.Empty(t, resp.Errors)
	var login struct {
		AccessToken string `json:"accessToken"`
		User        struct{ ID, Role string }
	}
	require.NoError(t, json.Unmarshal(resp.Data["login"], &login))
	assert.Equal(t, id, login.User.ID)
	assert.Equal(t, "STORE_KEEPER", login.User.Role)

	resp = f.exec(t, login.AccessToken, `{ me { id email } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"id":"`+id+`","email":"keeper@slooz.com"}`, string(resp.Data["me"]))
}

func TestRegister_DuplicadoConflict(t *testing.T) {
	f := newFixture(t)
	f.register(t, "dup@slooz.com", "MANAGER")

	resp := f.exec(t, "", registerMutation, map[string]interface{}{"in": map[string]interface{}{
		"name": "Otro", "email": "dup@slooz.com", "password": "password123",
	}})
	assert.Equal(t, "CONFLICT", resp.code())
}

func TestRegister_ValidacionConCampos(t *testing.T) {
	f := newFixture(t)
	resp := f.exec(t, "", registerMutation, map[string]interface{}{"in": map[string]interface{}{
		"name": "X", "email": "no-es-email", "password": "123",
	}})
	require.Equal(t, "BAD_USER_INPUT", resp.code())
	fields, ok := resp.Errors[0].Extensions["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 3)
	u, err := f.store.Users.GetByEmail(context.Background(), "no-es-email")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogin_FallosIdenticos(t *testing.T) {
	f := newFixture(t)
	f.register(t, "real@slooz.com", "")

	bad := f.exec(t, "", `mutation { login(loginInput: {email: "real@slooz.com", password: "otra-clave"}) { accessToken } }`, nil)
	none := f.exec(t, "", `mutation { login(loginInput: {email: "nadie@slooz.com", password: "password123"}) { accessToken } }`, nil)

	require.Len(t, bad.Errors, 1)
	require.Len(t, none.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", bad.code())
	assert.Equal(t, bad.Errors[0].Message, none.Errors[0].Message)
	assert.Equal(t, bad.Errors[0].Extensions, none.Errors[0].Extensions)
}

func TestMe_SinToken(t *testing.T) {
	f := newFixture(t)
	resp := f.exec(t, "", `{ me { id } }`, nil)
	assert.Equal(t, "UNAUTHENTICATED", resp.code())

	resp = f.exec(t, "token.invalido.aqui", `{ me { id } }`, nil)
	assert.Equal(t, "UNAUTHENTICATED", resp.code())
}

// ──────────────────────────────────────────────────────────────────────────────
// Products y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_UnidadPorDefecto(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")

	resp := f.exec(t, token, createProduct, map[string]interface{}{"in": map[string]interface{}{
		"name": "Basmati Rice", "sku": "GR-001", "category": "Grains", "price": 2.5, "quantity": 100,
	}})
	require.Empty(t, resp.Errors)
	var p struct {
		Unit        string  `json:"unit"`
		Price       float64 `json:"price"`
		Description *string `json:"description"`
		CreatedAt   string  `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["createProduct"], &p))
	assert.Equal(t, "pcs", p.Unit)
	assert.Equal(t, 2.5, p.Price)
	assert.Nil(t, p.Description)
	assert.True(t, strings.HasSuffix(p.CreatedAt, "Z"), "DateTime en UTC RFC 3339")
}

func TestCreateProduct_PrecioNegativo(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")

	resp := f.exec(t, token, createProduct, map[string]interface{}{"in": map[string]interface{}{
		"name": "X", "sku": "X-1", "category": "Grains", "price": -1, "quantity": 1,
	}})
	assert.Equal(t, "BAD_USER_INPUT", resp.code())
	assert.Zero(t, f.store.Products.Len())
}

func TestUpdateProduct_ParcialEInexistente(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")
	id := f.create(t, token, map[string]interface{}{
		"name": "Olive Oil", "sku": "OI-001", "category": "Oils", "price": 8.75, "quantity": 40, "unit": "l",
	})

	update := `mutation($in: UpdateProductInput!) { updateProduct(input: $in) { name quantity unit } }`
	resp := f.exec(t, token, update, map[string]interface{}{"in": map[string]interface{}{"id": id, "quantity": 3}})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"name":"Olive Oil","quantity":3,"unit":"l"}`, string(resp.Data["updateProduct"]))

	resp = f.exec(t, token, update, map[string]interface{}{"in": map[string]interface{}{
		"id": "00000000-0000-0000-0000-00000000dead", "quantity": 3,
	}})
	assert.Equal(t, "NOT_FOUND", resp.code())
	assert.Equal(t, 1, f.store.Products.Len())
}

func TestDeleteProduct_SoloManagerYDosVeces(t *testing.T) {
	f := newFixture(t)
	keeper, _ := f.register(t, "keeper@slooz.com", "STORE_KEEPER")
	manager, _ := f.register(t, "manager@slooz.com", "MANAGER")
	id := f.create(t, keeper, map[string]interface{}{
		"name": "Sugar", "sku": "SW-001", "category": "Sweeteners", "price": 1.1, "quantity": 12,
	})

	del := `mutation($id: ID!) { deleteProduct(id: $id) { id name } }`
	resp := f.exec(t, keeper, del, map[string]interface{}{"id": id})
	assert.Equal(t, "FORBIDDEN", resp.code())
	assert.Equal(t, 1, f.store.Products.Len())

	resp = f.exec(t, manager, del, map[string]interface{}{"id": id})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"id":"`+id+`","name":"Sugar"}`, string(resp.Data["deleteProduct"]))

	resp = f.exec(t, manager, del, map[string]interface{}{"id": id})
	assert.Equal(t, "NOT_FOUND", resp.code())
}

func TestDashboardStats_Roles(t *testing.T) {
	f := newFixture(t)
	keeper, _ := f.register(t, "keeper@slooz.com", "")
	manager, _ := f.register(t, "manager@slooz.com", "MANAGER")
	for _, p := range []map[string]interface{}{
		{"name": "A", "sku": "A", "category": "Grains", "price": 2, "quantity": 5},
		{"name": "B", "sku": "B", "category": "Grains", "price": 1, "quantity": 20},
		{"name": "C", "sku": "C", "category": "Oils", "price": 10, "quantity": 10},
	} {
		f.create(t, keeper, p)
	}

	q := `{ dashboardStats { totalProducts totalQuantity totalInventoryValue lowStockCount categoriesCount categoryBreakdown { category count totalValue } } }`

	resp := f.exec(t, keeper, q, nil)
	assert.Equal(t, "FORBIDDEN", resp.code())

	resp = f.exec(t, manager, q, nil)
	require.Empty(t, resp.Errors)
	var stats struct {
		TotalProducts       int     `json:"totalProducts"`
		TotalQuantity       int     `json:"totalQuantity"`
		TotalInventoryValue float64 `json:"totalInventoryValue"`
		LowStockCount       int     `json:"lowStockCount"`
		CategoriesCount     int     `json:"categoriesCount"`
		CategoryBreakdown   []struct {
			Category   string  `json:"category"`
			Count      int     `json:"count"`
			TotalValue float64 `json:"totalValue"`
		} `json:"categoryBreakdown"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["dashboardStats"], &stats))
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 35, stats.TotalQuantity)
	assert.Equal(t, 130.0, stats.TotalInventoryValue)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 2, stats.CategoriesCount)
	assert.Len(t, stats.CategoryBreakdown, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.prom.GraphQLOperations.WithLabelValues("dashboardStats", "forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.prom.GraphQLOperations.WithLabelValues("dashboardStats", "ok")))
}

func TestRequestProductImageUpload_SinAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")
	resp := f.exec(t, token, `mutation { requestProductImageUpload(productId: "x", contentType: "image/png") { uploadUrl } }`, nil)
	assert.Equal(t, "BAD_USER_INPUT", resp.code())

	resp = f.exec(t, "", `mutation { requestProductImageUpload(productId: "x", contentType: "image/png") { uploadUrl } }`, nil)
	assert.Equal(t, "UNAUTHENTICATED", resp.code())
}

// ──────────────────────────────────────────────────────────────────────────────
// Handler HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestHandler(t *testing.T) {
	f := newFixture(t)
	app := fiber.New()
	app.Post("/graphql", Handler(f.schema))

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ products { id } }"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHENTICATED", body.code())

	req = httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":""}`))
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valores por defecto, límites y null explícito
// ──────────────────────────────────────────────────────────────────────────────

// Los inputs con valor por defecto en el esquema se enlazan a campos no puntero;
// newFixture falla si el esquema no parsea.
func TestNewSchema_InputsConValorPorDefecto(t *testing.T) {
	f := newFixture(t)
	resp := f.exec(t, "", registerMutation, map[string]interface{}{"in": map[string]interface{}{
		"name": "Sin Rol", "email": "sinrol@slooz.com", "password": "password123",
	}})
	require.Empty(t, resp.Errors)
	assert.Contains(t, string(resp.Data["register"]), `"role":"STORE_KEEPER"`)
}

func TestRegister_PasswordDeMasDe72Bytes(t *testing.T) {
	f := newFixture(t)
	resp := f.exec(t, "", registerMutation, map[string]interface{}{"in": map[string]interface{}{
		"name": "Larga", "email": "larga@slooz.com", "password": strings.Repeat("a", 80),
	}})
	require.Equal(t, "BAD_USER_INPUT", resp.code())
	fields, ok := resp.Errors[0].Extensions["fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "maxbytes", fields[0].(map[string]interface{})["rule"])

	u, err := f.store.Users.GetByEmail(context.Background(), "larga@slooz.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	// 72 bytes exactos sigue siendo válido.
	resp = f.exec(t, "", registerMutation, map[string]interface{}{"in": map[string]interface{}{
		"name": "Justa", "email": "justa@slooz.com", "password": strings.Repeat("a", 72),
	}})
	assert.Empty(t, resp.Errors)
}

func TestCreateProduct_PrecioFueraDeNumeric(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")

	resp := f.exec(t, token, createProduct, map[string]interface{}{"in": map[string]interface{}{
		"name": "Oro", "sku": "AU-1", "category": "Metals", "price": 1e10, "quantity": 1,
	}})
	assert.Equal(t, "BAD_USER_INPUT", resp.code())
	assert.Zero(t, f.store.Products.Len())
}

// La suma de cantidades que no cabe en Int es un error, nunca un valor truncado.
func TestDashboardStats_TotalQuantityFueraDeRango(t *testing.T) {
	f := newFixture(t)
	keeper, _ := f.register(t, "keeper@slooz.com", "")
	manager, _ := f.register(t, "manager@slooz.com", "MANAGER")
	for _, sku := range []string{"BULK-1", "BULK-2"} {
		f.create(t, keeper, map[string]interface{}{
			"name": sku, "sku": sku, "category": "Grains", "price": 1, "quantity": 2000000000,
		})
	}

	resp := f.exec(t, manager, `{ dashboardStats { totalProducts totalQuantity } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "INTERNAL", resp.code())
	assert.Contains(t, resp.Errors[0].Message, "totalQuantity")
	assert.NotContains(t, string(resp.Data["dashboardStats"]), "-294967296")

	// Cada producto por separado sí se puede leer.
	resp = f.exec(t, keeper, `{ products { quantity } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `[{"quantity":2000000000},{"quantity":2000000000}]`, string(resp.Data["products"]))
}

func TestUpdateProduct_NullBorraCamposOpcionales(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "keeper@slooz.com", "")
	id := f.create(t, token, map[string]interface{}{
		"name": "Honey", "sku": "SW-002", "category": "Sweeteners", "price": 12.99, "quantity": 75,
		"description": "Miel cruda", "imageUrl": "https://cdn.test/honey.png",
	})

	update := `mutation($in: UpdateProductInput!) { updateProduct(input: $in) { description imageUrl quantity } }`

	// Omitido: no cambia.
	resp := f.exec(t, token, update, map[string]interface{}{"in": map[string]interface{}{"id": id, "quantity": 70}})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"description":"Miel cruda","imageUrl":"https://cdn.test/honey.png","quantity":70}`,
		string(resp.Data["updateProduct"]))

	// null explícito: se borra.
	resp = f.exec(t, token, update, map[string]interface{}{"in": map[string]interface{}{
		"id": id, "description": nil, "imageUrl": nil,
	}})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"description":null,"imageUrl":null,"quantity":70}`, string(resp.Data["updateProduct"]))
}
