package notifications

import (
	"bytes"
	"html/template"

	"portfolio-backend/internal/content"
)

const contactMessageTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New message from the portfolio contact form</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

var contactMessageTmpl = template.Must(template.New("contact_message").Parse(contactMessageTemplate))

func buildContactMessageHTML(msg content.ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactMessageTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
