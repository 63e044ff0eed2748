package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aranya-labs/aranya/pkg/crypt"
)

func TestHash(t *testing.T) {
	digest := crypt.Hash("203.0.113.9")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, crypt.Hash("203.0.113.9"))
	assert.NotEqual(t, digest, crypt.Hash("203.0.113.10"))

	// Known vector so a digest format change cannot slip in silently;
	// stored reset tokens and click IPs would stop matching.
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		crypt.Hash("hello"))
}
