// internal/app/system/sms/sms.go

// Package sms abstracts the one-time-code SMS provider. The service never
// talks to a carrier directly; it hands a phone number and message to a
// Sender. A deployment that has not configured a provider gets the
// disabled sender, which fails loudly instead of dropping codes silently.
package sms

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned by the disabled sender on every send.
var ErrNotConfigured = errors.New("sms provider not configured")

// Sender delivers a message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// FromConfig builds a Sender from the sms_provider config value.
//
//	"log"  -> logs the message instead of sending (dev/test)
//	""     -> disabled; every send fails with ErrNotConfigured
func FromConfig(provider string, logger *zap.Logger) (Sender, error) {
	switch provider {
	case "log":
		return &logSender{log: logger}, nil
	case "", "none":
		return Disabled(), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", provider)
	}
}

// Disabled returns a Sender that always fails with ErrNotConfigured.
func Disabled() Sender { return disabledSender{} }

type disabledSender struct{}

func (disabledSender) Send(ctx context.Context, phone, message string) error {
	return ErrNotConfigured
}

// logSender writes the message to the application log. Useful for local
// development where no SMS gateway exists.
type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(ctx context.Context, phone, message string) error {
	s.log.Info("sms (log provider)",
		zap.String("phone", phone),
		zap.String("message", message))
	return nil
}
