package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExists(t *testing.T) {
	collision := &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}

	assert.True(t, IsAlreadyExists(collision))
	assert.True(t, IsAlreadyExists(fmt.Errorf("put avatars/1.webp: %w", collision)))

	assert.False(t, IsAlreadyExists(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, IsAlreadyExists(errors.New("operation error S3: PutObject, PreconditionFailed")),
		"only the typed error code counts, not message text")
	assert.False(t, IsAlreadyExists(nil))
}

func TestSuffixedKey(t *testing.T) {
	out := suffixedKey("avatars/7.webp")

	assert.True(t, strings.HasPrefix(out, "avatars/7-"))
	assert.True(t, strings.HasSuffix(out, ".webp"))
	assert.NotEqual(t, "avatars/7.webp", out)
	assert.NotEqual(t, out, suffixedKey("avatars/7.webp"))
}

func TestKeyFromURL(t *testing.T) {
	s := &MediaStore{baseURL: "https://media.example.com"}

	key, ok := s.KeyFromURL("https://media.example.com/posts/3/abc.webp")
	assert.True(t, ok)
	assert.Equal(t, "posts/3/abc.webp", key)

	_, ok = s.KeyFromURL("https://elsewhere.example.com/posts/3/abc.webp")
	assert.False(t, ok)
}
