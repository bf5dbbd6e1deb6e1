package notification

import (
	"fmt"
	"strings"
	"sync"
)

// Template is a reusable message body with {{placeholder}} markers.
type Template struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Subject string           `json:"subject"`
	Body    string           `json:"body"`
	Type    NotificationType `json:"type"`
}

// TemplateEngine stores templates and renders them with caller data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine returns an engine preloaded with the claim
// lifecycle templates.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]*Template)}
	for _, tpl := range builtinTemplates() {
		e.templates[tpl.ID] = tpl
	}
	return e
}

func builtinTemplates() []*Template {
	return []*Template{
		{
			ID:      "claim-submitted",
			Name:    "Claim Submitted",
			Subject: "Claim {{claim_id}} Received",
			Body:    "Dear {{patient_name}}, we received your claim for {{amount}} and it is now {{status}}. You will be notified when processing completes.",
			Type:    TypeEmail,
		},
		{
			ID:      "claim-approved",
			Name:    "Claim Approved",
			Subject: "Claim {{claim_id}} Approved",
			Body:    "Dear {{patient_name}}, your claim for {{amount}} has been approved.",
			Type:    TypeEmail,
		},
		{
			ID:      "claim-denied",
			Name:    "Claim Denied",
			Subject: "Claim {{claim_id}} Denied",
			Body:    "Dear {{patient_name}}, your claim for {{amount}} was denied. Reason: {{reason}}. Contact your provider for details.",
			Type:    TypeEmail,
		},
		{
			ID:      "claim-processed",
			Name:    "Reimbursement Processed",
			Subject: "Reimbursement Processed for Claim {{claim_id}}",
			Body:    "Dear {{patient_name}}, reimbursement for your claim has been processed. Final amount: {{final_amount}}.",
			Type:    TypeEmail,
		},
		{
			ID:      "claim-review",
			Name:    "Claim Under Review",
			Subject: "Claim {{claim_id}} Under Review",
			Body:    "Dear {{patient_name}}, your claim for {{amount}} requires manual review. We will follow up within 5 business days.",
			Type:    TypeEmail,
		},
	}
}

// RegisterTemplate adds or replaces a template.
func (e *TemplateEngine) RegisterTemplate(tpl *Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[tpl.ID] = tpl
}

// Lookup returns the template with the given id.
func (e *TemplateEngine) Lookup(id string) (*Template, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tpl, ok := e.templates[id]
	return tpl, ok
}

// Render substitutes data into the template's subject and body.
// Placeholders with no matching key are left untouched.
func (e *TemplateEngine) Render(id string, data map[string]string) (subject, body string, err error) {
	tpl, ok := e.Lookup(id)
	if !ok {
		return "", "", fmt.Errorf("template %q not found", id)
	}
	return fill(tpl.Subject, data), fill(tpl.Body, data), nil
}

func fill(s string, data map[string]string) string {
	for k, v := range data {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}
