package security

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIdentityToken(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	base64Secret := base64.StdEncoding.EncodeToString(secret)

	identity := &PeoplebaseIdentity{
		Id:       "user-42",
		UserName: "Asha Rao",
		Role:     "hr",
		Email:    "asha@acme.test",
	}

	tokenStr, err := CreateIdentityToken(identity, base64Secret, 3600)
	require.NoError(t, err)

	var claims IdentityClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "user-42", claims.Identity.ID)
	assert.Equal(t, "Asha Rao", claims.UniqueName)
	assert.Equal(t, "hr", claims.Role)
	assert.Equal(t, "asha@acme.test", claims.Email)
	assert.Equal(t, "peoplebase", claims.Issuer)
	assert.Contains(t, claims.Audience, "*.peoplebase.app")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCreateIdentityTokenBadSecret(t *testing.T) {
	_, err := CreateIdentityToken(&PeoplebaseIdentity{Id: "u"}, "not base64 !!", 60)
	assert.Error(t, err)
}
