package password_test

import (
	"strings"
	"testing"

	"github.com/garnizeh/jobly/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	h, err := password.New("bcrypt", bcrypt.MinCost)
	require.NoError(t, err)
	assert.IsType(t, password.Bcrypt{}, h)

	h, err = password.New("plaintext", 0)
	require.NoError(t, err)
	assert.IsType(t, password.Plaintext{}, h)

	_, err = password.New("bcrypt", 1)
	require.Error(t, err)
	_, err = password.New("md5", 10)
	require.Error(t, err)
}

func TestHashers(t *testing.T) {
	cases := []struct {
		name   string
		hasher password.Hasher
		hashed bool
	}{
		{"bcrypt", password.Bcrypt{Cost: bcrypt.MinCost}, true},
		{"plaintext", password.Plaintext{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stored, err := c.hasher.Hash("password1")
			require.NoError(t, err)
			if c.hashed {
				assert.NotEqual(t, "password1", stored)
				assert.True(t, strings.HasPrefix(stored, "$2"))
			} else {
				assert.Equal(t, "password1", stored)
			}

			assert.True(t, c.hasher.Verify(stored, "password1"))
			assert.False(t, c.hasher.Verify(stored, "password2"))
			assert.False(t, c.hasher.Verify(stored, ""))
		})
	}
}

func TestBcrypt_RejectsGarbageHash(t *testing.T) {
	assert.False(t, password.Bcrypt{Cost: bcrypt.MinCost}.Verify("not-a-hash", "x"))
}
