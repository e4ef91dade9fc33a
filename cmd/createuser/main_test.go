package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/infrastructure/memory"
)

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errors.New("sin más entradas")
		}
		a := answers[i]
		i++
		return []byte(a), nil
	}
}

func TestPromptPassword(t *testing.T) {
	stubPasswords(t, "secreto1", "secreto1")
	var out bytes.Buffer
	pw, err := promptPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secreto1", pw)
	assert.Contains(t, out.String(), "Repetir password")
}

func TestPromptPassword_NoCoinciden(t *testing.T) {
	stubPasswords(t, "secreto1", "secreto2")
	_, err := promptPassword(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	in := dto.CreateUserRequest{Name: "Ana", Email: "ana@slooz.com", Password: "secreto1", Role: "MANAGER"}

	out, err := createUser(ctx, users, bcrypt.MinCost, in)
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", out.Role)

	_, err = createUser(ctx, users, bcrypt.MinCost, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, "Ya existe un usuario con ese email", describe(err))
}

func TestCreateUser_Validacion(t *testing.T) {
	_, err := createUser(context.Background(), memory.NewUserRepository(), bcrypt.MinCost,
		dto.CreateUserRequest{Name: "A", Email: "x", Password: "1", Role: "ADMIN"})
	require.ErrorIs(t, err, domain.ErrValidation)

	msg := describe(err)
	assert.Contains(t, msg, "- email:")
	assert.Contains(t, msg, "- role:")
}
