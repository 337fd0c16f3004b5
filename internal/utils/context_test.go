// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetSecretKeyFromContext_Success(t *testing.T) {
	ctx := WithSecretKey(context.Background(), "ABCDEFGH")

	key, ok := GetSecretKeyFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if key != "ABCDEFGH" {
		t.Errorf("expected key=ABCDEFGH, got %s", key)
	}
}

func TestGetSecretKeyFromContext_Missing(t *testing.T) {
	key, ok := GetSecretKeyFromContext(context.Background())
	if ok {
		t.Error("expected ok=false for empty context")
	}
	if key != "" {
		t.Errorf("expected empty key, got %s", key)
	}
}

func TestGetSecretKeyFromContext_WrongTypeOrEmpty(t *testing.T) {
	ctx := context.WithValue(context.Background(), SecretKeyCtxKey, 42)
	if _, ok := GetSecretKeyFromContext(ctx); ok {
		t.Error("expected ok=false for non-string value")
	}

	ctx = WithSecretKey(context.Background(), "")
	if _, ok := GetSecretKeyFromContext(ctx); ok {
		t.Error("expected ok=false for empty key")
	}
}
