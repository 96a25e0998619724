// Package secrets implements the at-rest encryption used for hospital
// credential material. Values are AES-256-GCM sealed with a key derived
// from the deployment master key, then base64 encoded with the nonce
// prefixed to the ciphertext.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"emr-gateway-service/internal/app/contracts"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength        = 32
	pbkdf2Iterations = 10000
)

type aesGcmDecryptor struct {
	key []byte
}

func NewAesGcmDecryptor(masterKey, salt string) contracts.SecretDecryptor {
	return &aesGcmDecryptor{
		key: pbkdf2.Key([]byte(masterKey), []byte(salt), pbkdf2Iterations, keyLength, sha256.New),
	}
}

func (d *aesGcmDecryptor) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(d.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext shorter than nonce")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Encrypt seals a plaintext the same way the provisioning tooling does.
func (d *aesGcmDecryptor) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(d.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}
