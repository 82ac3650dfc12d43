package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newSite(t *testing.T, name string) *domain.Site {
	t.Helper()
	site, err := factory.New().Site()
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	site.SiteName = name
	return site
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	key := generateKey(t)
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(underlyingStore)

	ctx := context.Background()
	sessionID := "test-session"
	original := newSite(t, "my-secret-sauce")

	if err := secureStore.Save(ctx, sessionID, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The backing store only sees the sealed envelope.
	stored, err := underlyingStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.SiteName != "" || len(stored.Pages) != 0 {
		t.Fatalf("Expected document to be hidden, found: %+v", stored)
	}
	if stored.Sealed == "" {
		t.Fatal("Expected sealed payload in envelope")
	}

	loaded, err := secureStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.SiteName != "my-secret-sauce" {
		t.Errorf("Expected 'my-secret-sauce', got %v", loaded.SiteName)
	}
	if len(loaded.Pages) != len(original.Pages) || loaded.ActivePageID != original.ActivePageID {
		t.Errorf("Decrypted document differs from original")
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	ctx := context.Background()
	sessionID := "rotation-session"

	if err := secureStoreOld.Save(ctx, sessionID, newSite(t, "encrypted-with-old-key")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.SiteName != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	loaded.SiteName = "encrypted-with-new-key"
	if err := secureStoreNew.Save(ctx, sessionID, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	if _, err := secureStoreOld.Load(ctx, sessionID); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainDocument(t *testing.T) {
	underlyingStore := NewMockStore()
	ctx := context.Background()
	if err := underlyingStore.Save(ctx, "plain", newSite(t, "plain")); err != nil {
		t.Fatal(err)
	}

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	if _, err := secureStore.Load(ctx, "plain"); err == nil {
		t.Error("Expected plain document to be rejected")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}

func TestEncryptionMiddleware_EnvelopeBoundToSession(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()

	if err := secureStore.Save(ctx, "alice", newSite(t, "alice-site")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	envelope, err := underlyingStore.Load(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := underlyingStore.Save(ctx, "mallory", envelope); err != nil {
		t.Fatal(err)
	}

	if _, err := secureStore.Load(ctx, "mallory"); err == nil {
		t.Error("Expected an envelope copied to another session to be rejected")
	}
	if _, err := secureStore.Load(ctx, "alice"); err != nil {
		t.Errorf("Original session should still open: %v", err)
	}
}
