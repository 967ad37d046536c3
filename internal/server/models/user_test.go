package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Public_OmitsPasswordHash(t *testing.T) {
	bd := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	u := &User{
		ID:           "u1",
		UserName:     "alice01",
		PasswordHash: "$2a$10$secret",
		Email:        "alice@example.com",
		Birthday:     &bd,
	}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)

	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
	assert.JSONEq(t, `{"id":"u1","username":"alice01","email":"alice@example.com","birthday":"1990-04-02","favorite_movies":[]}`, string(b))
}
