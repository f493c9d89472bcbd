package email

import (
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestSendRecoveryEmail(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := NewMailer(Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		FromName:     "Plant Office",
		FromEmail:    "office@example.com",
		DashboardURL: "https://dash.example.com/",
	}).WithSender(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	if err := m.SendRecoveryEmail("ada@example.com", "Ada", "abc 123", time.Hour); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAddr != "smtp.example.com:587" || gotFrom != "office@example.com" {
		t.Fatalf("unexpected envelope %s %s", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ada@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	msg := string(gotMsg)
	// html/template escapes '+' inside href attributes.
	if !strings.Contains(msg, "https://dash.example.com/reset-password?token=abc&#43;123") {
		t.Fatalf("recovery link missing from message:\n%s", msg)
	}
	if !strings.Contains(msg, "expires in 60 minutes") {
		t.Fatalf("ttl missing from message")
	}
}

func TestSendRecoveryEmailRequiresSMTP(t *testing.T) {
	m := NewMailer(Config{})
	if err := m.SendRecoveryEmail("a@b.c", "A", "t", time.Hour); err == nil {
		t.Fatalf("expected error without smtp host")
	}
}
