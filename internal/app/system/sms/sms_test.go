package sms

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestFromConfig(t *testing.T) {
	if _, err := FromConfig("log", zap.NewNop()); err != nil {
		t.Errorf("log provider should build: %v", err)
	}
	if _, err := FromConfig("", zap.NewNop()); err != nil {
		t.Errorf("empty provider should build the disabled sender: %v", err)
	}
	if _, err := FromConfig("none", zap.NewNop()); err != nil {
		t.Errorf("'none' should build the disabled sender: %v", err)
	}
	if _, err := FromConfig("carrier-pigeon", zap.NewNop()); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestDisabledSenderFailsLoudly(t *testing.T) {
	err := Disabled().Send(context.Background(), "+911234567890", "code 123456")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
}

func TestLogSenderSucceeds(t *testing.T) {
	s, err := FromConfig("log", zap.NewNop())
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if err := s.Send(context.Background(), "+911234567890", "code 123456"); err != nil {
		t.Errorf("log sender should not fail: %v", err)
	}
}
