package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHTML(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	svc := NewEmailService(EmailConfig{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  587,
		FromName:  "Salay Glass",
		FromEmail: "receipts@salayglass.ph",
	}).WithSender(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	require.NoError(t, svc.SendHTML("ana@example.com", "Receipt #0007", "<p>hi</p>"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "receipts@salayglass.ph", gotFrom)
	assert.Equal(t, []string{"ana@example.com"}, gotTo)
	msg := string(gotMsg)
	assert.Contains(t, msg, "To: ana@example.com\r\n")
	assert.Contains(t, msg, "Subject: Receipt #0007\r\n")
	assert.True(t, strings.HasSuffix(msg, "<p>hi</p>"))
}

func TestSendHTMLErrors(t *testing.T) {
	t.Parallel()

	unconfigured := NewEmailService(EmailConfig{})
	assert.ErrorIs(t, unconfigured.SendHTML("ana@example.com", "s", "b"), ErrNotConfigured)

	failing := NewEmailService(EmailConfig{SMTPHost: "h", SMTPPort: 25, FromEmail: "a@b.c"}).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		})
	assert.ErrorContains(t, failing.SendHTML("ana@example.com", "s", "b"), "connection refused")
	assert.Error(t, failing.SendHTML("0917 000 0000", "s", "b"))
}

func TestIsAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAddress("ana@example.com"))
	assert.True(t, IsAddress(" Ana <ana@example.com> "))
	assert.False(t, IsAddress("0917 000 0000"))
	assert.False(t, IsAddress(""))
}
