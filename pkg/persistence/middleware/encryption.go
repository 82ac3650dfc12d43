package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next ports.SiteStore
	// keys holds the active key first, then the fallbacks in order.
	keys []cipher.AEAD
}

// NewEncryptionMiddleware creates a middleware that encrypts documents using AES-GCM.
// The stored value is an envelope whose only content is the sealed ciphertext.
// The session id is authenticated with the ciphertext, so an envelope copied to
// another session does not open.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	keys := make([]cipher.AEAD, 0, 1+len(config.FallbackKeys))
	for _, key := range append([][]byte{config.ActiveKey}, config.FallbackKeys...) {
		aead, err := newAEAD(key)
		if err != nil {
			panic(fmt.Sprintf("invalid encryption key: %v", err))
		}
		keys = append(keys, aead)
	}
	return func(next ports.SiteStore) ports.SiteStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (m *encryptionMiddleware) Save(ctx context.Context, sessionID string, site *domain.Site) error {
	plainText, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	active := m.keys[0]
	nonce := make([]byte, active.NonceSize(), active.NonceSize()+len(plainText)+active.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to encrypt document: %w", err)
	}
	sealed := active.Seal(nonce, nonce, plainText, []byte(sessionID))

	envelope := &domain.Site{Sealed: base64.StdEncoding.EncodeToString(sealed)}
	return m.next.Save(ctx, sessionID, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.Site, error) {
	envelope, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Fail closed: a plain document is not accepted once encryption is configured.
	if envelope.Sealed == "" {
		return nil, errors.New("document is missing encrypted data envelope")
	}

	sealed, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := m.open(sealed, []byte(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt document: %w", err)
	}

	var site domain.Site
	if err := json.Unmarshal(plainText, &site); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted document: %w", err)
	}
	return &site, nil
}

// open tries every key, active first.
func (m *encryptionMiddleware) open(sealed, sessionID []byte) ([]byte, error) {
	for _, aead := range m.keys {
		n := aead.NonceSize()
		if len(sealed) < n {
			return nil, errors.New("ciphertext too short")
		}
		if plain, err := aead.Open(nil, sealed[:n], sealed[n:], sessionID); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
