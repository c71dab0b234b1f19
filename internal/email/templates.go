package email

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v2"
)

//go:embed defaults.yaml
var defaultTemplatesYAML []byte

// DefaultTemplate - шаблон, который используется без пользовательского
const DefaultTemplate = "received"

type rawTemplate struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type compiled struct {
	subject *template.Template
	body    *template.Template
}

// TemplateManager хранит встроенные шаблоны писем (received, shortlisted, rejected)
type TemplateManager struct {
	templates map[string]compiled
	mutex     sync.RWMutex
}

// NewTemplateManager загружает встроенные шаблоны
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]compiled)}
	if err := tm.LoadYAML(defaultTemplatesYAML); err != nil {
		return nil, fmt.Errorf("load default email templates: %w", err)
	}
	return tm, nil
}

// LoadYAML добавляет шаблоны из YAML вида name: {subject, body}
func (tm *TemplateManager) LoadYAML(data []byte) error {
	var raw map[string]rawTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, t := range raw {
		if err := tm.AddTemplate(name, t.Subject, t.Body); err != nil {
			return err
		}
	}
	return nil
}

// AddTemplate компилирует и регистрирует шаблон
func (tm *TemplateManager) AddTemplate(name, subject, body string) error {
	c, err := compile(name, subject, body)
	if err != nil {
		return err
	}
	tm.mutex.Lock()
	tm.templates[name] = c
	tm.mutex.Unlock()
	return nil
}

// Has - шаблон зарегистрирован
func (tm *TemplateManager) Has(name string) bool {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	_, ok := tm.templates[name]
	return ok
}

// Render рендерит встроенный шаблон, неизвестное имя - шаблон received
func (tm *TemplateManager) Render(name string, data TemplateData) (subject, body string, err error) {
	tm.mutex.RLock()
	c, ok := tm.templates[name]
	if !ok {
		c, ok = tm.templates[DefaultTemplate]
	}
	tm.mutex.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template not found: %s", name)
	}
	return c.execute(data)
}

// RenderCustom рендерит пользовательский шаблон из БД
func RenderCustom(subject, body string, data TemplateData) (string, string, error) {
	c, err := compile("custom", subject, body)
	if err != nil {
		return "", "", err
	}
	return c.execute(data)
}

// ValidateTemplate проверяет, что строки шаблона компилируются и рендерятся
func ValidateTemplate(subject, body string) error {
	_, _, err := RenderCustom(subject, body, TemplateData{})
	return err
}

func compile(name, subject, body string) (compiled, error) {
	st, err := template.New(name + ".subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return compiled{}, fmt.Errorf("failed to parse subject template: %w", err)
	}
	bt, err := template.New(name + ".body").Option("missingkey=error").Parse(body)
	if err != nil {
		return compiled{}, fmt.Errorf("failed to parse body template: %w", err)
	}
	return compiled{subject: st, body: bt}, nil
}

func (c compiled) execute(data TemplateData) (string, string, error) {
	var subject, body strings.Builder
	if err := c.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject template: %w", err)
	}
	if err := c.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to execute body template: %w", err)
	}
	return subject.String(), body.String(), nil
}
