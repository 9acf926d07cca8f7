package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ecommerce-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func identity(role string) pkgjwt.Identity {
	return pkgjwt.Identity{
		UserID:    "00000000-0000-0000-0000-000000000001",
		Email:     "ana@example.com",
		FirstName: "Ana",
		Role:      role,
		CartID:    "65f000000000000000000001",
	}
}

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, identity("admin"), "ecommerce-api-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, identity("admin"), got)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, identity("admin"), "ecommerce-api-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, identity("usuario"), "ecommerce-api-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestSecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", identity("usuario"), "x", 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
