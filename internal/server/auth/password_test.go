package auth

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifiesAndSalts(t *testing.T) {
	h1, err := HashPassword("correct horse")
	require.NoError(t, err)
	h2, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "hashes must be salted")
	assert.NotContains(t, h1, "correct horse")

	ok, err := VerifyPassword("correct horse", h1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_Bcrypt_SingleBitFlipFails(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	secret := []byte("s3cret!")
	for i := range secret {
		flipped := append([]byte(nil), secret...)
		flipped[i] ^= 0x01

		ok, err := VerifyPassword(string(flipped), string(hash))
		require.NoError(t, err)
		assert.False(t, ok, "flipped byte %d must not verify", i)
	}

	ok, err := VerifyPassword(string(secret), string(hash))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_BcryptPrefixes(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt.js and PHP emit $2b$ / $2y$; the algorithm is the same.
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		h := prefix + string(hash[4:])
		ok, err := VerifyPassword("pw", h)
		require.NoError(t, err, prefix)
		assert.True(t, ok, prefix)
	}
}

func TestVerifyPassword_Bcrypt_Corrupted(t *testing.T) {
	ok, err := VerifyPassword("pw", "$2a$10$short")
	assert.False(t, ok)
	assert.Error(t, err)
}

func argonHash(password string, salt []byte) string {
	hash := argon2.IDKey([]byte(password), salt, 1, 8*1024, 1, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 8*1024, 1, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestVerifyPassword_Argon2id(t *testing.T) {
	encoded := argonHash("pharmacy", []byte("0123456789abcdef"))

	ok, err := VerifyPassword("pharmacy", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("pharmacz", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_Argon2id_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few parts":   "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA",
		"bad version":     "$argon2id$v=x$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"other version":   "$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"bad params":      "$argon2id$v=19$m=a,t=1,p=1$c2FsdA$aGFzaA",
		"bad salt base64": "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
		"bad hash base64": "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
		"empty hash":      "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
		"zero threads":    "$argon2id$v=19$m=8192,t=1,p=0$c2FsdA$aGFzaA",
		"zero time":       "$argon2id$v=19$m=8192,t=0,p=1$c2FsdA$aGFzaA",
	}
	for name, encoded := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := VerifyPassword("pw", encoded)
			assert.False(t, ok)
			assert.Error(t, err)
		})
	}
}

func TestVerifyPassword_PlaintextIsNeverCompared(t *testing.T) {
	ok, err := VerifyPassword("letmein", "letmein")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedHash)
}
