package secrets

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecryptRoundTrip(t *testing.T) {
	d := NewAesGcmDecryptor("test-master-key", "test-salt").(*aesGcmDecryptor)

	sealed, err := d.Encrypt("super-secret-client-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "super-secret-client-secret", sealed)

	plaintext, err := d.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "super-secret-client-secret", plaintext)
}

func TestDecryptUniqueNonces(t *testing.T) {
	d := NewAesGcmDecryptor("test-master-key", "test-salt").(*aesGcmDecryptor)

	first, err := d.Encrypt("same-value")
	require.NoError(t, err)
	second, err := d.Encrypt("same-value")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptWrongKey(t *testing.T) {
	d := NewAesGcmDecryptor("test-master-key", "test-salt").(*aesGcmDecryptor)
	other := NewAesGcmDecryptor("different-master-key", "test-salt")

	sealed, err := d.Encrypt("super-secret")
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.Error(t, err)
}

func TestDecryptMalformedInput(t *testing.T) {
	d := NewAesGcmDecryptor("test-master-key", "test-salt")

	_, err := d.Decrypt("not base64 at all!!")
	assert.Error(t, err)

	tooShort := base64.StdEncoding.EncodeToString([]byte("abc"))
	_, err = d.Decrypt(tooShort)
	assert.Error(t, err)
}
