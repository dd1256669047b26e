package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bloodcamp/pkg/domainerrors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)
	adminID := uuid.New()

	signed, err := svc.Generate(adminID)
	require.NoError(t, err)

	got, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), got)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	signed, err := NewService("key-one", time.Hour).Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewService("key-two", time.Hour).ValidateToken(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewService("test-signing-key", -time.Minute)
	signed, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.EqualError(t, err, "token has expired")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("test-signing-key", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	require.EqualError(t, err, "invalid token")
}
