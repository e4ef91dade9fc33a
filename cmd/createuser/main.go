// createuser crea un usuario desde la terminal. El password se lee sin eco.
//
// Uso: go run ./cmd/createuser -email ana@slooz.com -name "Ana" -role MANAGER
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/validation"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
	"github.com/jhoicas/commodities-api/internal/infrastructure/store"
	"github.com/jhoicas/commodities-api/pkg/config"
)

// readPassword punto de inyección de term.ReadPassword para tests.
var readPassword = term.ReadPassword

func main() {
	email := flag.String("email", "", "email del usuario (obligatorio)")
	name := flag.String("name", "", "nombre del usuario (obligatorio)")
	role := flag.String("role", entity.RoleStoreKeeper, "rol: MANAGER o STORE_KEEPER")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	password, err := promptPassword(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer password: %v\n", err)
		st.Close()
		os.Exit(1)
	}

	in := dto.CreateUserRequest{Name: *name, Email: *email, Password: password, Role: strings.ToUpper(*role)}
	out, err := createUser(ctx, st.Users, cfg.App.BcryptCost, in)
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		st.Close()
		os.Exit(1)
	}
	fmt.Printf("Usuario creado: %s (%s) id=%s\n", out.Email, out.Role, out.ID)
}

// promptPassword pide el password dos veces sin eco.
func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	fmt.Fprint(w, "Repetir password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("los passwords no coinciden")
	}
	return string(first), nil
}

func createUser(ctx context.Context, users repository.UserRepository, bcryptCost int, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return auth.NewAuthUseCase(users, security.NewBcryptHasher(bcryptCost), nil).CreateUser(ctx, in)
}

// describe formatea el error para la terminal (un campo por línea en validación).
func describe(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		lines := []string{"Datos inválidos:"}
		for _, f := range verr.Fields {
			lines = append(lines, fmt.Sprintf("  - %s: %s", f.Field, f.Message))
		}
		return strings.Join(lines, "\n")
	}
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return "Ya existe un usuario con ese email"
	}
	return "Error: " + err.Error()
}
