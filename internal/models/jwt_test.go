package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTClaims_HasRole(t *testing.T) {
	raw := `{"sub":"u-1","preferred_username":"52998224725","realm_access":{"roles":["offline_access","sindauto:admin"]}}`

	var claims JWTClaims
	require.NoError(t, json.Unmarshal([]byte(raw), &claims))

	assert.Equal(t, "u-1", claims.Subject)
	assert.True(t, claims.HasRole("sindauto:admin"))
	assert.False(t, claims.HasRole("go:admin"))
}
