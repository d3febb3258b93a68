package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/medidesk/internal/server/auth"
	"github.com/dmitrijs2005/medidesk/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPrompt(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(string) ([]byte, error) {
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestRun_HashesPassword(t *testing.T) {
	stubPrompt(t, "s3cret-pass", "s3cret-pass")

	var out bytes.Buffer
	require.NoError(t, run(nil, &out))

	hash := strings.TrimSpace(out.String())
	ok, err := auth.VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_Mismatch(t *testing.T) {
	stubPrompt(t, "one", "two")

	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errMismatch)
	assert.Empty(t, out.String())
}

func TestRun_Empty(t *testing.T) {
	stubPrompt(t, "", "")

	assert.Error(t, run(nil, &bytes.Buffer{}))
}

func TestRun_Secret(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-secret"}, &out))

	s := strings.TrimSpace(out.String())
	assert.GreaterOrEqual(t, len(s), config.MinSecretKeyLength)
}
