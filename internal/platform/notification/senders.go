package notification

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// LogEmailSender writes email notifications to the log instead of
// delivering them. It stands in for a real provider in development and
// in deployments without an outbound mail service.
type LogEmailSender struct {
	logger zerolog.Logger
}

func NewLogEmailSender(logger zerolog.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger}
}

func (s *LogEmailSender) SendEmail(_ context.Context, to, subject, _ string) error {
	s.logger.Info().
		Str("channel", "email").
		Str("to", to).
		Str("subject", subject).
		Msg("notification dispatched")
	return nil
}

// LogSMSSender is the SMS counterpart of LogEmailSender.
type LogSMSSender struct {
	logger zerolog.Logger
}

func NewLogSMSSender(logger zerolog.Logger) *LogSMSSender {
	return &LogSMSSender{logger: logger}
}

func (s *LogSMSSender) SendSMS(_ context.Context, to, _ string) error {
	s.logger.Info().
		Str("channel", "sms").
		Str("to", to).
		Msg("notification dispatched")
	return nil
}

// EmailCall records one SendEmail invocation on a MockEmailSender.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// SMSCall records one SendSMS invocation on a MockSMSSender.
type SMSCall struct {
	To   string
	Body string
}

// MockEmailSender captures sends for assertions in tests.
type MockEmailSender struct {
	ShouldFail bool
	FailError  string

	mu    sync.Mutex
	calls []EmailCall
}

func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockSMSSender captures SMS sends for assertions in tests.
type MockSMSSender struct {
	ShouldFail bool
	FailError  string

	mu    sync.Mutex
	calls []SMSCall
}

func (m *MockSMSSender) SendSMS(_ context.Context, to, body string) error {
	m.mu.Lock()
	m.calls = append(m.calls, SMSCall{To: to, Body: body})
	m.mu.Unlock()

	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockSMSSender) Calls() []SMSCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SMSCall, len(m.calls))
	copy(out, m.calls)
	return out
}
