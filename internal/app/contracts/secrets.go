package contracts

// SecretDecryptor recovers plaintext secret material stored encrypted in
// the credentials collection.
type SecretDecryptor interface {
	Decrypt(encoded string) (string, error)
}
