package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/infrastructure/memory"
	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
	pkgjwt "github.com/jhoicas/commodities-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	uc     *auth.AuthUseCase
	users  *memory.UserRepository
	tokens *pkgjwt.Issuer
	guard  *auth.Guard
}

func newFixture() fixture {
	users := memory.NewUserRepository()
	tokens := pkgjwt.NewIssuer(testSecret, "commodities-api-test", 60)
	return fixture{
		uc:     auth.NewAuthUseCase(users, security.NewBcryptHasher(bcrypt.MinCost), tokens),
		users:  users,
		tokens: tokens,
		guard:  auth.NewGuard(tokens),
	}
}

func register(t *testing.T, f fixture, email, role string) *dto.AuthResponse {
	t.Helper()
	out, err := f.uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Test User", Email: email, Password: "password123", Role: role,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_LuegoLoginDevuelveElMismoUsuario(t *testing.T) {
	f := newFixture()
	reg := register(t, f, "new@slooz.com", entity.RoleManager)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, entity.RoleManager, reg.User.Role)

	login, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "new@slooz.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.Equal(t, "new@slooz.com", login.User.Email)
}

func TestRegister_RolPorDefectoStoreKeeper(t *testing.T) {
	f := newFixture()
	reg := register(t, f, "keeper@slooz.com", "")
	assert.Equal(t, entity.RoleStoreKeeper, reg.User.Role)
}

func TestRegister_GuardaHashNoTextoPlano(t *testing.T) {
	f := newFixture()
	reg := register(t, f, "hash@slooz.com", "")

	u, err := f.users.GetByID(context.Background(), reg.User.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestRegister_EmailDuplicadoEsConflicto(t *testing.T) {
	f := newFixture()
	register(t, f, "dup@slooz.com", "")

	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Otro", Email: "dup@slooz.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.True(t, domain.IsConflict(err))
}

func TestRegister_RolDesconocido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{
		Name: "X", Email: "x@slooz.com", Password: "password123", Role: "ADMIN",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Email inexistente y password incorrecto son indistinguibles.
func TestLogin_FallosIdenticos(t *testing.T) {
	f := newFixture()
	register(t, f, "known@slooz.com", "")

	_, errUnknown := f.uc.Login(context.Background(), dto.LoginRequest{Email: "unknown@slooz.com", Password: "password123"})
	_, errWrong := f.uc.Login(context.Background(), dto.LoginRequest{Email: "known@slooz.com", Password: "wrong-pass"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Equal(t, "credenciales inválidas", errWrong.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Token emitido -> Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenAceptadoPorGuard(t *testing.T) {
	f := newFixture()
	reg := register(t, f, "guard@slooz.com", entity.RoleStoreKeeper)

	id, err := f.guard.Authenticate("Bearer " + reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id.UserID)
	assert.Equal(t, "guard@slooz.com", id.Email)
	assert.Equal(t, entity.RoleStoreKeeper, id.Role)
}

func TestMe(t *testing.T) {
	f := newFixture()
	reg := register(t, f, "me@slooz.com", "")

	me, err := f.uc.Me(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User, *me)

	_, err = f.uc.Me(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateUser(t *testing.T) {
	f := newFixture()
	u, err := f.uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Name: "Admin", Email: "admin@slooz.com", Password: "password123", Role: entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores del almacenamiento
// ──────────────────────────────────────────────────────────────────────────────

type failingUsers struct{ memory.UserRepository }

var errDB = errors.New("conexión perdida")

func (*failingUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, errDB }

func TestLogin_ErrorDeAlmacenamientoNoEsCredencialInvalida(t *testing.T) {
	uc := auth.NewAuthUseCase(&failingUsers{}, security.NewBcryptHasher(bcrypt.MinCost),
		pkgjwt.NewIssuer(testSecret, "x", 60))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
