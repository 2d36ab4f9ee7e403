// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ResetEmailData holds data for the password-reset email templates.
type ResetEmailData struct {
	SiteName  string
	ResetLink string
	ExpiresIn string // e.g., "1 hour"
}

// BuildResetEmail creates a password-reset email with both HTML and text bodies.
func BuildResetEmail(data ResetEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Password Reset - %s", data.SiteName),
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data ResetEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("You requested a password reset for your %s account.\n\n", data.SiteName))
	buf.WriteString("Open this link to reset your password:\n")
	buf.WriteString(data.ResetLink + "\n\n")
	buf.WriteString(fmt.Sprintf("This link expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not request this, you can safely ignore this email.\n")
	return buf.String()
}

func buildResetHTML(data ResetEmailData) string {
	tmpl := template.Must(template.New("reset").Parse(resetHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Password Reset</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 600px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #1E3A8A;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px; font-size: 18px; color: #333;">Password Reset Request</h2>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                You requested a password reset for your {{.SiteName}} account.
                Click the button below to reset your password:
              </p>
              <div style="text-align: center; margin: 30px 0;">
                <a href="{{.ResetLink}}" style="background-color: #1E3A8A; color: #ffffff; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
              </div>
              <p style="margin: 0 0 8px; font-size: 14px; color: #374151;"><strong>This link will expire in {{.ExpiresIn}}.</strong></p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">If you didn't request this, please ignore this email.</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; color: #666; font-size: 12px;">This email was sent by {{.SiteName}}. If you have any questions, please contact our support team.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
