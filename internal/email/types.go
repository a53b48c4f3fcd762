package email

// Email is one outbound message. HTMLBody wins over Body when both are
// set.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the html templates in templates.go.
type TemplateData map[string]interface{}
