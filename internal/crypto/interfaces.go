package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects small secrets, such as the session credential, before
// they are written to local storage.
//
// Scheme:
//
//	key  = Argon2id(secret, salt)
//	blob = version || salt || nonce || XChaCha20-Poly1305(key, nonce, plaintext)
type Sealer interface {
	// Seal encrypts plaintext. Each call uses a fresh salt and nonce, so
	// sealing the same value twice yields different blobs.
	Seal(plaintext []byte) ([]byte, error)

	// Open reverses Seal. It returns ErrOpenFailed when the blob was sealed
	// with a different secret or has been tampered with.
	Open(blob []byte) ([]byte, error)
}
