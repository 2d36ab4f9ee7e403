package mailer

import (
	"strings"
	"testing"
)

func TestBuildResetEmail(t *testing.T) {
	e := BuildResetEmail(ResetEmailData{
		SiteName:  "Gridle",
		ResetLink: "https://gridle.test/reset-password/abc123",
		ExpiresIn: "1 hour",
	})

	if !strings.Contains(e.Subject, "Gridle") {
		t.Errorf("subject missing site name: %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "https://gridle.test/reset-password/abc123") {
		t.Error("text body missing reset link")
	}
	if !strings.Contains(e.TextBody, "1 hour") {
		t.Error("text body missing expiry")
	}
	if !strings.Contains(e.HTMLBody, `href="https://gridle.test/reset-password/abc123"`) {
		t.Error("html body missing reset link")
	}
}

func TestBuildResetEmail_EscapesHTML(t *testing.T) {
	e := BuildResetEmail(ResetEmailData{
		SiteName:  `<script>x</script>`,
		ResetLink: "https://gridle.test/reset",
		ExpiresIn: "1 hour",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("site name not escaped in HTML body")
	}
}

func TestBuildMessage_MultipartAlternative(t *testing.T) {
	m := New("localhost", 1025, "", "", "noreply@gridle.test", "Gridle", nil)
	msg := string(m.build(Email{
		To:       "a@x.com",
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>rich</p>",
	}))

	for _, want := range []string{
		"To: a@x.com",
		"multipart/alternative",
		"text/plain; charset=utf-8",
		"text/html; charset=utf-8",
		"plain",
		"<p>rich</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}
