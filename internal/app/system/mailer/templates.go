// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// DecisionEmailData holds data for the registration decision email sent by
// the approval workflow. Decision is the past-tense word embedded in the
// subject and body: "approved" or "rejected". Message is the admin's
// free-text feedback, already sanitized by the caller.
type DecisionEmailData struct {
	SiteName string
	Name     string
	Decision string
	Message  string
}

// BuildDecisionEmail creates the decision notification with both HTML and
// text bodies. The To field is set by the caller.
func BuildDecisionEmail(data DecisionEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Your registration has been %s", data.Decision),
		TextBody: buildDecisionText(data),
		HTMLBody: buildDecisionHTML(data),
	}
}

func buildDecisionText(data DecisionEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hello %s,\n\n", data.Name))
	buf.WriteString(fmt.Sprintf("Your registration has been %s by the admin.\n\n", data.Decision))
	buf.WriteString(fmt.Sprintf("Reason/Feedback: %s\n\n", data.Message))
	buf.WriteString("Thank you!\n")
	return buf.String()
}

func buildDecisionHTML(data DecisionEmailData) string {
	tmpl := template.Must(template.New("decision").Parse(decisionHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const decisionHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Registration Decision</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hello {{.Name}},
              </p>

              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Your registration has been <strong>{{.Decision}}</strong> by the admin.
              </p>

              <!-- Feedback Box -->
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; margin-bottom: 24px;">
                <p style="margin: 0; font-size: 14px; color: #1f2937;">{{.Message}}</p>
              </div>

              <p style="margin: 0; font-size: 16px; color: #374151;">
                Thank you!
              </p>
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                You are receiving this email because an administrator reviewed your {{.SiteName}} signup.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
