package render

import (
	"testing"
	"time"

	"github.com/lixenwraith/snake/engine"
)

func TestBannerLifetime(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Now())
	b := NewBanner(clock, 5*time.Second)

	if _, ok := b.Text(); ok {
		t.Fatal("Expected no banner initially")
	}

	b.NotifyGameOver(3)
	text, ok := b.Text()
	if !ok || text != "Game over! Your score: 3" {
		t.Fatalf("Expected game over banner, got %q ok=%v", text, ok)
	}

	clock.Advance(4 * time.Second)
	if _, ok := b.Text(); !ok {
		t.Error("Expected banner still showing before expiry")
	}

	clock.Advance(time.Second)
	if _, ok := b.Text(); ok {
		t.Error("Expected banner hidden at expiry")
	}
}

func TestBannerReplaceAndClear(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Now())
	b := NewBanner(clock, time.Second)

	b.Show("first")
	clock.Advance(900 * time.Millisecond)
	b.Show("second")
	clock.Advance(500 * time.Millisecond)

	if text, ok := b.Text(); !ok || text != "second" {
		t.Errorf("Expected replacement to restart lifetime, got %q ok=%v", text, ok)
	}

	b.Clear()
	if _, ok := b.Text(); ok {
		t.Error("Expected banner hidden after Clear")
	}
}

func TestBannerOnExpireFires(t *testing.T) {
	b := NewBanner(nil, 10*time.Millisecond)
	fired := make(chan struct{}, 1)
	b.OnExpire(func() { fired <- struct{}{} })

	b.NotifyGameOver(1)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected expiry callback")
	}
}

func TestBannerNotifyDoesNotBlock(t *testing.T) {
	b := NewBanner(nil, time.Hour)
	block := make(chan struct{})
	b.OnExpire(func() { <-block })
	defer close(block)

	done := make(chan struct{})
	go func() {
		b.NotifyGameOver(10)
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyGameOver blocked")
	}
}

func TestBannerIsNotifier(t *testing.T) {
	var _ engine.Notifier = NewBanner(nil, 0)
}
