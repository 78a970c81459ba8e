package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDrainReader(t *testing.T) {
	src := strings.Repeat("abc", 50_000)
	buf, err := DrainReader(context.Background(), strings.NewReader(src), 0)
	if err != nil {
		t.Fatalf("DrainReader: %v", err)
	}
	defer ReleaseBuffer(buf)
	if buf.String() != src {
		t.Error("drained bytes differ from source")
	}
}

func TestDrainReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DrainReader(ctx, strings.NewReader("data"), 0); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCloneBytes(t *testing.T) {
	orig := []byte("hello")
	cp := CloneBytes(orig)
	orig[0] = 'X'
	if !bytes.Equal(cp, []byte("hello")) {
		t.Error("clone shares memory with the source")
	}
}
