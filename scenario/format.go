package scenario

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

type yamlStep struct {
	Conditions []string `yaml:"conditions"`
	Join       bool     `yaml:"join,omitempty"`
	Facts      []string `yaml:"facts"`
	Missing    []string `yaml:"missing,omitempty"`
	Unexpected []string `yaml:"unexpected,omitempty"`
}

type yamlReport struct {
	Implications []string   `yaml:"implications"`
	Steps        []yamlStep `yaml:"steps"`
	TypeFacts    []string   `yaml:"typeFacts"`
	OK           bool       `yaml:"ok"`
}

// Render prints the report in the given format
func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatText, "":
		return r.text(), nil
	case FormatYAML:
		out := yamlReport{Implications: r.Implications, TypeFacts: r.TypeFacts, OK: r.OK()}
		for _, step := range r.Steps {
			out.Steps = append(out.Steps, yamlStep{
				Conditions: step.Conditions,
				Join:       step.Join,
				Facts:      step.Facts,
				Missing:    step.Missing,
				Unexpected: step.Unexpected,
			})
		}
		bytes, err := yaml.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("could not encode report: %w", err)
		}
		return string(bytes), nil
	default:
		return "", fmt.Errorf("unknown format '%s'", format)
	}
}

func (r *Report) text() string {
	sb := &strings.Builder{}
	sb.WriteString("implications:\n")
	for _, i := range r.Implications {
		sb.WriteString("  " + i + "\n")
	}
	for i, step := range r.Steps {
		verb := "approve"
		if step.Join {
			verb = "join"
		}
		fmt.Fprintf(sb, "step %d: %s %s\n", i, verb, strings.Join(step.Conditions, " | "))
		for _, f := range step.Facts {
			sb.WriteString("  " + f + "\n")
		}
		for _, f := range step.Missing {
			sb.WriteString("  missing: " + f + "\n")
		}
		for _, f := range step.Unexpected {
			sb.WriteString("  unexpected: " + f + "\n")
		}
	}
	sb.WriteString("type facts:\n")
	for _, tf := range r.TypeFacts {
		sb.WriteString("  " + tf + "\n")
	}
	return sb.String()
}
