package data

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/fourbecs/becs/internal/core/ecs"
)

var (
	ErrUnknownTemplate   = eris.New("template not found")
	ErrDuplicateTemplate = eris.New("template name already used")
)

// TemplateEntry lists the component names an entity kind is spawned with.
type TemplateEntry struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`
}

type templateFile struct {
	Templates []TemplateEntry `yaml:"templates"`
}

// Template is a TemplateEntry resolved against a registry.
type Template struct {
	Name  string
	Kinds []ecs.Kind
}

// TemplateTable holds entity templates indexed by name.
type TemplateTable struct {
	templates map[string]*Template
	order     []string
}

// LoadTemplateTable loads a templates YAML file. Every component name must
// already be declared in reg.
func LoadTemplateTable(path string, reg *ecs.Registry) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read template list")
	}
	return ParseTemplateTable(raw, reg)
}

func ParseTemplateTable(raw []byte, reg *ecs.Registry) (*TemplateTable, error) {
	f, err := parseTemplateFile(raw)
	if err != nil {
		return nil, err
	}
	t := &TemplateTable{
		templates: make(map[string]*Template, len(f.Templates)),
		order:     make([]string, 0, len(f.Templates)),
	}
	for _, entry := range f.Templates {
		if _, ok := t.templates[entry.Name]; ok {
			return nil, eris.Wrapf(ErrDuplicateTemplate, "%q", entry.Name)
		}
		tpl := &Template{Name: entry.Name, Kinds: make([]ecs.Kind, 0, len(entry.Components))}
		for _, name := range entry.Components {
			k, err := reg.Lookup(name)
			if err != nil {
				return nil, eris.Wrapf(err, "template %q", entry.Name)
			}
			tpl.Kinds = append(tpl.Kinds, k)
		}
		t.templates[entry.Name] = tpl
		t.order = append(t.order, entry.Name)
	}
	return t, nil
}

// DeclareTemplateTags declares every component name in raw that reg does not
// know yet as a tag, in order of first appearance. It returns the number of
// tags declared.
func DeclareTemplateTags(raw []byte, reg *ecs.Registry) (int, error) {
	f, err := parseTemplateFile(raw)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, entry := range f.Templates {
		for _, name := range entry.Components {
			if _, err := reg.Lookup(name); err == nil {
				continue
			}
			if _, err := ecs.DeclareTag(reg, name); err != nil {
				return n, eris.Wrapf(err, "template %q", entry.Name)
			}
			n++
		}
	}
	return n, nil
}

func parseTemplateFile(raw []byte) (*templateFile, error) {
	var f templateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrap(err, "parse template list")
	}
	return &f, nil
}

// Get returns the named template, or nil.
func (t *TemplateTable) Get(name string) *Template {
	return t.templates[name]
}

// Names returns template names in file order.
func (t *TemplateTable) Names() []string {
	return t.order
}

func (t *TemplateTable) Count() int {
	return len(t.templates)
}

// Spawn creates an entity in w from the named template.
func (t *TemplateTable) Spawn(w *ecs.World, name string) (ecs.EntityID, error) {
	tpl := t.templates[name]
	if tpl == nil {
		return 0, eris.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	id, err := w.Spawn(tpl.Kinds...)
	if err != nil {
		return 0, eris.Wrapf(err, "spawn %q", name)
	}
	return id, nil
}
