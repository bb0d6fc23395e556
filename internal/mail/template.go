package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #eee;">
  <div style="background: #000; color: white; padding: 30px; text-align: center;">
    <h1>{{.AppName}}</h1>
    <p>Email Verification Required</p>
  </div>
  <div style="padding: 30px; background: #f9f9f9;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>You registered as a <strong>{{.RoleLabel}}</strong>.</p>
    <p>Click below to verify your email:</p>
    <div style="text-align: center; margin: 20px 0;">
      <a href="{{.Link}}" style="background: #000; color: white; padding: 14px 35px; text-decoration: none; border-radius: 8px; font-weight: bold;">
        Verify Email
      </a>
    </div>
    <p>Or copy: <code style="background: #eee; padding: 10px; font-size: 12px; word-break: break-all;">{{.Link}}</code></p>
    <p><strong>Expires in {{.ExpiresIn}}.</strong></p>
  </div>
  <div style="text-align: center; padding: 20px; color: #666; font-size: 14px;">
    &copy; {{.Year}} {{.AppName}}
  </div>
</div>
`))

type verificationData struct {
	AppName   string
	Name      string
	RoleLabel string
	Link      string
	ExpiresIn string
	Year      int
}

func renderVerification(data verificationData) (string, error) {
	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render verification mail: %w", err)
	}
	return buf.String(), nil
}
