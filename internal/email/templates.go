package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const verificationTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to ResolveNow, {{.Name}}!</h2>
  <p>Please confirm your email address to activate your account.</p>
  <p>
    <a href="{{.Link}}" style="background-color: #4F46E5; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">
      Verify Email
    </a>
  </p>
  <p>This link expires in 24 hours. If you did not create an account, you can ignore this message.</p>
</div>`

const complaintSubmittedTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Complaint Received</h2>
  <p>Hi {{.Name}},</p>
  <p>We have registered your complaint <strong>{{.ComplaintID}}</strong>: {{.Title}}.</p>
  <p>Our team will review it shortly. You can follow its progress from your dashboard.</p>
</div>`

const statusUpdateTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Complaint {{.ComplaintID}} Updated</h2>
  <p>Hi {{.Name}},</p>
  <p>The status of your complaint is now <strong>{{.Status}}</strong>.</p>
  {{if .Resolution}}<p>Resolution: {{.Resolution}}</p>{{end}}
</div>`

// Mailer renders the application templates and hands the result to a
// Provider. All Send* methods are synchronous; callers decide whether
// to run them in the background.
type Mailer struct {
	provider  Provider
	from      string
	templates map[string]*template.Template
}

func NewMailer(provider Provider, fromName, fromEmail string) *Mailer {
	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}

	return &Mailer{
		provider: provider,
		from:     from,
		templates: map[string]*template.Template{
			"verification":        template.Must(template.New("verification").Parse(verificationTemplate)),
			"complaint_submitted": template.Must(template.New("complaint_submitted").Parse(complaintSubmittedTemplate)),
			"status_update":       template.Must(template.New("status_update").Parse(statusUpdateTemplate)),
		},
	}
}

func (m *Mailer) render(name string, data TemplateData) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (m *Mailer) sendTemplate(to, subject, templateName string, data TemplateData) error {
	htmlBody, err := m.render(templateName, data)
	if err != nil {
		return err
	}

	return m.provider.Send(&Email{
		From:     m.from,
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendVerification mails the account activation link.
func (m *Mailer) SendVerification(to, name, link string) error {
	return m.sendTemplate(to, "Verify your ResolveNow account", "verification", TemplateData{
		"Name": name,
		"Link": link,
	})
}

// SendComplaintConfirmation acknowledges a newly registered complaint.
func (m *Mailer) SendComplaintConfirmation(to, name, complaintID, title string) error {
	return m.sendTemplate(to, fmt.Sprintf("Complaint %s received", complaintID), "complaint_submitted", TemplateData{
		"Name":        name,
		"ComplaintID": complaintID,
		"Title":       title,
	})
}

// SendStatusUpdate informs the complaint owner about a status change.
func (m *Mailer) SendStatusUpdate(to, name, complaintID, status, resolution string) error {
	return m.sendTemplate(to, fmt.Sprintf("Complaint %s is now %s", complaintID, status), "status_update", TemplateData{
		"Name":        name,
		"ComplaintID": complaintID,
		"Status":      status,
		"Resolution":  resolution,
	})
}
