package authutils

import (
	"testing"

	"carelink-backend/config"
	"carelink-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	conf.Auth.JWTRefreshExpireInSec = 120
	config.Conf = conf
}

func TestGetToken(t *testing.T) {
	initTestConfig()
	tokenString, err := GetToken("user-1", "Alex Rivera", models.CaregiverRole)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "user-1", claims["sub"])
	require.Equal(t, "caregiver", claims["role"])
	require.Equal(t, "Alex Rivera", claims["name"])
}

func TestGetRefreshToken(t *testing.T) {
	initTestConfig()
	tokenString, err := GetRefreshToken("user-1", "Alex Rivera")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "user-1", claims["sub"])
	_, hasRole := claims["role"]
	require.False(t, hasRole)
}

func TestGetMD5Hash(t *testing.T) {
	require.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", GetMD5Hash("password"))
	require.Equal(t, GetMD5Hash("secret"), GetMD5Hash("secret"))
	require.NotEqual(t, GetMD5Hash("secret"), GetMD5Hash("Secret"))
}
