package synth

import (
	"embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// TypeTemplate describes a self-contained chain of catalogue definitions.
type TypeTemplate struct {
	Root        string          `yaml:"root"`
	Definitions []DefinitionDef `yaml:"definitions"`
}

// DefinitionDef is one catalogue definition of a template.
type DefinitionDef struct {
	Element string      `yaml:"element"`
	Key     string      `yaml:"key"`
	LNClass string      `yaml:"lnClass,omitempty"`
	CDC     string      `yaml:"cdc,omitempty"`
	Desc    string      `yaml:"desc,omitempty"`
	Members []MemberDef `yaml:"members"`
}

// MemberDef is a declared child of a definition.
type MemberDef struct {
	Element string `yaml:"element"`
	Name    string `yaml:"name,omitempty"`
	BType   string `yaml:"bType,omitempty"`
	Type    string `yaml:"type,omitempty"`
	FC      string `yaml:"fc,omitempty"`
	Dchg    bool   `yaml:"dchg,omitempty"`
	Qchg    bool   `yaml:"qchg,omitempty"`
	Ord     int    `yaml:"ord,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// Kind returns the catalogue kind of the definition.
func (d DefinitionDef) Kind() scl.DefinitionKind {
	return scl.ParseTag(d.Element).DefinitionKind()
}

var (
	templateMu    sync.Mutex
	templateCache = make(map[string]*TypeTemplate)
)

// LoadTemplate returns the embedded template with the given name.
func LoadTemplate(name string) (*TypeTemplate, error) {
	templateMu.Lock()
	defer templateMu.Unlock()

	if t, ok := templateCache[name]; ok {
		return t, nil
	}

	data, err := templateFS.ReadFile("templates/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("template %q not found: %w", name, err)
	}
	t, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	templateCache[name] = t
	return t, nil
}

// ParseTemplate decodes and checks a template.
func ParseTemplate(data []byte) (*TypeTemplate, error) {
	var t TypeTemplate
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *TypeTemplate) validate() error {
	keys := make(map[string]bool, len(t.Definitions))
	for _, d := range t.Definitions {
		if d.Kind() == scl.DefinitionNone {
			return fmt.Errorf("%w: %q is not a definition element", ErrTemplate, d.Element)
		}
		if d.Key == "" || keys[d.Key] {
			return fmt.Errorf("%w: missing or repeated key %q", ErrTemplate, d.Key)
		}
		keys[d.Key] = true
		for _, m := range d.Members {
			if scl.ParseTag(m.Element).MemberKind() == scl.MemberNone {
				return fmt.Errorf("%w: %q is not a member element", ErrTemplate, m.Element)
			}
		}
	}
	if _, ok := t.root(); !ok {
		return fmt.Errorf("%w: root %q is not a node type", ErrTemplate, t.Root)
	}
	return nil
}

func (t *TypeTemplate) root() (DefinitionDef, bool) {
	for _, d := range t.Definitions {
		if d.Key == t.Root && d.Kind() == scl.DefinitionNodeType {
			return d, true
		}
	}
	return DefinitionDef{}, false
}

// fragments renders the template with the given key to id mapping.
func (t *TypeTemplate) fragments(ids map[string]string) []*scl.Element {
	out := make([]*scl.Element, 0, len(t.Definitions))
	for _, d := range t.Definitions {
		def := scl.NewElement(d.Element,
			"id", ids[d.Key],
			"desc", d.Desc,
			"lnClass", d.LNClass,
			"cdc", d.CDC,
		)
		for _, m := range d.Members {
			def.Append(m.element(ids))
		}
		out = append(out, def)
	}
	return out
}

func (m MemberDef) element(ids map[string]string) *scl.Element {
	typ := m.Type
	if id, ok := ids[typ]; ok {
		typ = id
	}
	var ord string
	if m.Element == scl.TagEnumVal.String() {
		ord = strconv.Itoa(m.Ord)
	}
	e := scl.NewElement(m.Element,
		"name", m.Name,
		"bType", m.BType,
		"type", typ,
		"fc", m.FC,
		"dchg", flag(m.Dchg),
		"qchg", flag(m.Qchg),
		"ord", ord,
	)
	e.Text = m.Text
	return e
}

func flag(b bool) string {
	if b {
		return "true"
	}
	return ""
}
