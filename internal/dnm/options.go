package dnm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action says what the builder does with an element.
type Action string

const (
	ActionEnter       Action = "enter"
	ActionPlaceholder Action = "placeholder"
	ActionSkip        Action = "skip"
)

// Strategy picks the text that stands in for a placeholder element.
type Strategy string

const (
	StrategyFixed   Strategy = "fixed"
	StrategyLexemes Strategy = "lexemes"
	StrategyTeX     Strategy = "tex"
	StrategyContent Strategy = "content"
)

// Whitespace policies.
const (
	WhitespaceCollapse = "collapse"
	WhitespacePreserve = "preserve"
)

// TagRule is the normalization applied to one element name or class.
// Token doubles as the fallback text for the non-fixed strategies.
type TagRule struct {
	Action   Action   `yaml:"action"`
	Token    string   `yaml:"token,omitempty"`
	Strategy Strategy `yaml:"strategy,omitempty"`
}

// Enter descends into the element.
func Enter() TagRule { return TagRule{Action: ActionEnter} }

// Skip drops the element and its subtree.
func Skip() TagRule { return TagRule{Action: ActionSkip} }

// Placeholder replaces the element with a fixed token.
func Placeholder(token string) TagRule {
	return TagRule{Action: ActionPlaceholder, Token: token, Strategy: StrategyFixed}
}

// Options controls how a document tree is projected into plain text.
type Options struct {
	Whitespace      string `yaml:"whitespace"`
	UnicodeForm     string `yaml:"unicode_form"`
	FoldDiacritics  bool   `yaml:"fold_diacritics"`
	Lowercase       bool   `yaml:"lowercase"`
	WrapTokens      bool   `yaml:"wrap_tokens"`
	PullPunctuation bool   `yaml:"pull_punctuation"`
	SeparateBlocks  bool   `yaml:"separate_blocks"`

	BlockElements []string           `yaml:"block_elements,omitempty"`
	Elements      map[string]TagRule `yaml:"elements,omitempty"`
	Classes       map[string]TagRule `yaml:"classes,omitempty"`
}

var defaultBlockElements = []string{
	"address", "article", "aside", "blockquote", "caption", "dd", "div", "dl", "dt",
	"figcaption", "figure", "footer", "h1", "h2", "h3", "h4", "h5", "h6", "header",
	"li", "ol", "p", "pre", "section", "table", "td", "th", "title", "tr", "ul",
}

// DefaultOptions collapses whitespace, separates block elements and
// replaces formulas with a MathFormula token.
func DefaultOptions() Options {
	return Options{
		Whitespace:     WhitespaceCollapse,
		SeparateBlocks: true,
		BlockElements:  append([]string(nil), defaultBlockElements...),
		Elements: map[string]TagRule{
			"head":   Skip(),
			"script": Skip(),
			"style":  Skip(),
			"math":   Placeholder("MathFormula"),
		},
	}
}

// MathOptions is the normalization used for LaTeXML-produced papers:
// formulas, citations and equation tables become tokens, tables, notes and
// bibliographies are dropped and diacritics are folded.
func MathOptions() Options {
	o := DefaultOptions()
	o.Whitespace = WhitespacePreserve
	o.FoldDiacritics = true
	o.Elements["math"] = Placeholder("MathFormula")
	o.Elements["cite"] = Placeholder("CitationElement")
	o.Elements["table"] = Skip()
	o.Classes = map[string]TagRule{
		"ltx_equation":      Placeholder("\nMathFormula\n"),
		"ltx_equationgroup": Placeholder("\nMathFormula\n"),
		"ltx_note_mark":     Skip(),
		"ltx_note_outer":    Skip(),
		"ltx_bibliography":  Skip(),
	}
	return o
}

// Profile returns a named preset.
func Profile(name string) (Options, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultOptions(), nil
	case "math", "llamapun":
		return MathOptions(), nil
	}
	return Options{}, &ConfigError{Option: "profile", Reason: fmt.Sprintf("unknown profile %q", name)}
}

// ParseOptions overlays a YAML document on the named profile and validates
// the result. Unknown keys are rejected; in particular there is no
// stemming option, since stemmed text cannot be mapped back to the tree.
func ParseOptions(profile string, data []byte) (Options, error) {
	o, err := Profile(profile)
	if err != nil {
		return Options{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, &ConfigError{Option: "yaml", Reason: err.Error()}
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// LoadOptions reads a YAML options file.
func LoadOptions(profile, path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return ParseOptions(profile, data)
}

// Validate reports the first unknown or contradictory setting.
func (o Options) Validate() error {
	switch o.Whitespace {
	case "", WhitespaceCollapse, WhitespacePreserve:
	default:
		return &ConfigError{Option: "whitespace", Reason: fmt.Sprintf("unknown policy %q", o.Whitespace)}
	}
	switch strings.ToUpper(o.UnicodeForm) {
	case "", "NFC", "NFKC":
	case "NFD", "NFKD":
		if o.FoldDiacritics {
			return &ConfigError{Option: "unicode_form", Reason: "diacritic folding recomposes text and cannot produce a decomposed form"}
		}
	default:
		return &ConfigError{Option: "unicode_form", Reason: fmt.Sprintf("unknown form %q", o.UnicodeForm)}
	}
	if err := validateRules("elements", o.Elements); err != nil {
		return err
	}
	return validateRules("classes", o.Classes)
}

func validateRules(kind string, rules map[string]TagRule) error {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := rules[name].validate(); err != nil {
			return &ConfigError{Option: kind + "." + name, Reason: err.Error()}
		}
	}
	return nil
}

func (r TagRule) validate() error {
	switch r.Action {
	case ActionEnter, ActionSkip:
		if r.Token != "" || r.Strategy != "" {
			return fmt.Errorf("action %s takes no token or strategy", r.Action)
		}
	case ActionPlaceholder:
		switch r.strategy() {
		case StrategyFixed:
			if r.Token == "" {
				return fmt.Errorf("fixed placeholder needs a token")
			}
		case StrategyLexemes, StrategyTeX, StrategyContent:
		default:
			return fmt.Errorf("unknown placeholder strategy %q", r.Strategy)
		}
	default:
		return fmt.Errorf("unknown action %q", r.Action)
	}
	return nil
}

func (r TagRule) strategy() Strategy {
	if r.Strategy == "" {
		return StrategyFixed
	}
	return r.Strategy
}

func (o Options) collapse() bool {
	return o.Whitespace != WhitespacePreserve
}
