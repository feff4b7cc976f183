package password_test

import (
	"testing"

	"trattoria/shared/password"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, password.Verify("s3cret-pass", hash))
	assert.ErrorIs(t, password.Verify("wrong-pass", hash), password.ErrInvalidPassword)
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerify_GarbageHash(t *testing.T) {
	err := password.Verify("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
