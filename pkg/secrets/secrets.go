package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher seals and opens short secrets (license keys, account passwords)
// before they touch the database. Sealed values are
// base64(nonce || ciphertext+tag).
type Cipher interface {
	Encrypt(plainText string) (string, error)
	Decrypt(sealed string) (string, error)
}

type aeadCipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 256-bit key from the given key material and returns a
// ready Cipher. Key material must not be empty.
func NewCipher(keyMaterial string) (Cipher, error) {
	if keyMaterial == "" {
		return nil, errors.New("secret key must not be empty")
	}

	key := sha256.Sum256([]byte(keyMaterial))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}

	return &aeadCipher{aead: aead}, nil
}

func (c *aeadCipher) Encrypt(plainText string) (string, error) {
	if plainText == "" {
		return "", nil
	}

	nonce, err := randomNonce(c.aead.NonceSize())
	if err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plainText), nil)
	packed := make([]byte, 0, len(nonce)+len(sealed))
	packed = append(packed, nonce...)
	packed = append(packed, sealed...)

	return base64.StdEncoding.EncodeToString(packed), nil
}

func (c *aeadCipher) Decrypt(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	packed, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.New("sealed value is not valid base64")
	}

	nonceSize := c.aead.NonceSize()
	if len(packed) < nonceSize+c.aead.Overhead() {
		return "", errors.New("sealed value is too short")
	}

	nonce, cipherText := packed[:nonceSize], packed[nonceSize:]
	plain, err := c.aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.New("sealed value failed authentication")
	}

	return string(plain), nil
}

func randomNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}
