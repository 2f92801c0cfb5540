package memcache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCodesSetAndConsume(t *testing.T) {
	codes := NewCodes()
	codes.Set("verify:abc", "user@example.com", time.Minute)

	if got := codes.Consume("verify:abc"); got != "user@example.com" {
		t.Errorf("Consume() = %q, want user@example.com", got)
	}

	// Single use: a second consume finds nothing.
	if got := codes.Consume("verify:abc"); got != "" {
		t.Errorf("second Consume() = %q, want empty", got)
	}
}

func TestCodesUnknownToken(t *testing.T) {
	codes := NewCodes()
	if got := codes.Consume("missing"); got != "" {
		t.Errorf("Consume() = %q, want empty", got)
	}
	if _, ok := codes.Peek("missing"); ok {
		t.Error("Peek() found a token that was never set")
	}
}

func TestCodesExpiry(t *testing.T) {
	codes := NewCodes()
	codes.Set("stale", "user@example.com", -time.Second)

	if _, ok := codes.Peek("stale"); ok {
		t.Error("Peek() returned an expired token")
	}
	if got := codes.Consume("stale"); got != "" {
		t.Errorf("Consume() = %q, want empty for expired token", got)
	}
}

func TestCodesPeekDoesNotConsume(t *testing.T) {
	codes := NewCodes()
	codes.Set("token", "user@example.com", time.Minute)

	for i := 0; i < 3; i++ {
		email, ok := codes.Peek("token")
		if !ok || email != "user@example.com" {
			t.Fatalf("Peek() = %q, %v on read %d", email, ok, i+1)
		}
	}
	if got := codes.Consume("token"); got != "user@example.com" {
		t.Errorf("Consume() after peeks = %q, want user@example.com", got)
	}
}

func TestCodesOverwrite(t *testing.T) {
	codes := NewCodes()
	codes.Set("token", "old@example.com", time.Minute)
	codes.Set("token", "new@example.com", time.Minute)

	if got := codes.Consume("token"); got != "new@example.com" {
		t.Errorf("Consume() = %q, want the latest value", got)
	}
}

func TestCodesConcurrentConsume(t *testing.T) {
	codes := NewCodes()
	const tokens = 50
	for i := 0; i < tokens; i++ {
		codes.Set(fmt.Sprintf("t%d", i), "user@example.com", time.Minute)
	}

	var wg sync.WaitGroup
	hits := make(chan struct{}, tokens*2)
	for i := 0; i < tokens; i++ {
		token := fmt.Sprintf("t%d", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if codes.Consume(token) != "" {
					hits <- struct{}{}
				}
			}()
		}
	}
	wg.Wait()
	close(hits)

	if got := len(hits); got != tokens {
		t.Errorf("successful consumes = %d, want %d (one per token)", got, tokens)
	}
}
