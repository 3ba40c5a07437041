package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/pkg/apperror"
	"github.com/sangkips/salay-pos/pkg/utils"
)

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	hash, err := utils.HashPassword("4321")
	require.NoError(t, err)
	svc := service.NewAuthService(hash, utils.NewJWTManager("secret", time.Hour), nil)
	require.True(t, svc.Enabled())

	out, err := svc.Login(context.Background(), " marites ", "4321")
	require.NoError(t, err)
	assert.Equal(t, "marites", out.Clerk)
	assert.NotEmpty(t, out.Token)

	clerk, err := svc.Authenticate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "marites", clerk)

	out, err = svc.Login(context.Background(), "", "4321")
	require.NoError(t, err)
	assert.Equal(t, service.DefaultClerk, out.Clerk)

	_, err = svc.Login(context.Background(), "marites", "0000")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthServiceDisabled(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService("", utils.NewJWTManager("secret", time.Hour), nil)
	assert.False(t, svc.Enabled())

	_, err := svc.Login(context.Background(), "marites", "4321")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
