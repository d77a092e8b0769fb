package storage

import (
	"context"
	"testing"
)

func TestNewR2Client_RequiresSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  R2Config
	}{
		{"no endpoint", R2Config{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"no credentials", R2Config{Endpoint: "https://r2.example.com", Bucket: "b"}},
		{"no bucket", R2Config{Endpoint: "https://r2.example.com", AccessKey: "a", SecretKey: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewR2Client(context.Background(), tt.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewR2Client_Valid(t *testing.T) {
	client, err := NewR2Client(context.Background(), R2Config{
		Endpoint:  "https://account.r2.cloudflarestorage.com",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "menus",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.bucket != "menus" {
		t.Errorf("expected bucket menus, got %q", client.bucket)
	}
}
