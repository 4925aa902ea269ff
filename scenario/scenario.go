// Package scenario loads YAML descriptions of what an analysis knows at a
// program point, and replays them through logic.Flow.
//
//	variables:
//	  - {name: x, type: "String?"}
//	  - {name: isString, synthetic: true}
//	implications:
//	  - "x != Null -> x: {String}"
//	steps:
//	  - approve: "x != Null"
//	    expect: ["x: {String}"]
package scenario

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cottand/flowfacts/dfa"
	"github.com/cottand/flowfacts/internal/log"
	"github.com/cottand/flowfacts/notation"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "scenario")

type Scenario struct {
	Variables    []VariableDecl `yaml:"variables"`
	TypeFacts    []string       `yaml:"typeFacts"`
	Implications []string       `yaml:"implications"`
	Steps        []Step         `yaml:"steps"`

	// set by Validate
	validated    bool
	resolver     resolver
	typeFacts    []dfa.TypeFact
	implications []dfa.Implication
	steps        []compiledStep
}

type VariableDecl struct {
	Name string `yaml:"name"`
	// Type is the declared type of a real variable, it may be left empty
	Type      string `yaml:"type"`
	Synthetic bool   `yaml:"synthetic"`
}

// Step either approves a single condition, or approves each
// condition of Join on its own branch and joins the branches.
type Step struct {
	Approve string   `yaml:"approve"`
	Join    []string `yaml:"join"`
	// Expect lists the facts the step should produce.
	// It is not checked when left out.
	Expect []string `yaml:"expect"`
}

type compiledStep struct {
	conditions []dfa.ConditionFact
	join       bool
	expect     []dfa.Fact
	checked    bool
}

func Load(r io.Reader) (*Scenario, error) {
	s := &Scenario{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return nil, fmt.Errorf("could not decode scenario: %w", err)
	}
	return s, nil
}

// resolver looks variables up by their declared name as well as by their
// rendering, and treats every type name as a NominalType
type resolver struct {
	variables map[string]dfa.Variable
}

func (r resolver) Variable(name string) (dfa.Variable, bool) {
	v, ok := r.variables[name]
	return v, ok
}

func (r resolver) Type(name string) (dfa.Type, bool) {
	return NominalType{Name: name}, true
}

// Validate resolves every variable, fact and implication of the scenario.
// It reports all problems at once as *Errors.
func (s *Scenario) Validate() error {
	var errs *Errors
	s.resolver = resolver{variables: map[string]dfa.Variable{}}
	errs = errs.Merge(s.declareVariables())

	s.typeFacts = nil
	for i, src := range s.TypeFacts {
		where := fmt.Sprintf("typeFacts[%d]", i)
		fact, err := notation.ParseFact(src, s.resolver)
		if err != nil {
			errs = errs.With(Problem{Code: InvalidTypeFact, Where: where, Err: err})
			continue
		}
		tf, ok := fact.(dfa.TypeFact)
		if !ok {
			errs = errs.With(Problem{Code: InvalidTypeFact, Where: where, Err: fmt.Errorf("'%s' is not a type fact", src)})
			continue
		}
		s.typeFacts = append(s.typeFacts, tf)
	}

	s.implications = nil
	for i, src := range s.Implications {
		implication, err := notation.ParseImplication(src, s.resolver)
		if err != nil {
			errs = errs.With(Problem{Code: InvalidImplication, Where: fmt.Sprintf("implications[%d]", i), Err: err})
			continue
		}
		s.implications = append(s.implications, implication)
	}

	s.steps = nil
	for i, step := range s.Steps {
		compiled, stepErrs := s.compileStep(fmt.Sprintf("steps[%d]", i), step)
		errs = errs.Merge(stepErrs)
		s.steps = append(s.steps, compiled)
	}

	if errs.HasError() {
		logger.Debug("scenario is invalid", "errors", errs)
		return errs
	}
	s.validated = true
	return nil
}

func (s *Scenario) declareVariables() *Errors {
	var errs *Errors
	declare := func(where, name string, v dfa.Variable) {
		if _, exists := s.resolver.variables[name]; exists {
			errs = errs.With(Problem{Code: DuplicateVariable, Where: where, Err: fmt.Errorf("variable '%s' is already declared", name)})
			return
		}
		s.resolver.variables[name] = v
	}

	for i, decl := range s.Variables {
		where := fmt.Sprintf("variables[%d]", i)
		id := dfa.VariableID(i)
		if decl.Synthetic {
			if decl.Type != "" {
				errs = errs.With(Problem{Code: InvalidVariable, Where: where, Err: fmt.Errorf("synthetic variable '%s' cannot have a type", decl.Name)})
			}
			v := dfa.NewSyntheticVariable(id)
			declare(where, v.String(), v)
			if decl.Name != "" && decl.Name != v.String() {
				declare(where, decl.Name, v)
			}
			continue
		}
		if decl.Name == "" || strings.HasPrefix(decl.Name, "$") {
			errs = errs.With(Problem{Code: InvalidVariable, Where: where, Err: fmt.Errorf("invalid variable name '%s'", decl.Name)})
			continue
		}
		var declared dfa.Type
		if decl.Type != "" {
			declared = NominalType{Name: decl.Type}
		}
		declare(where, decl.Name, dfa.NewRealVariable(id, decl.Name, declared))
	}
	return errs
}

func (s *Scenario) compileStep(where string, step Step) (compiledStep, *Errors) {
	var errs *Errors
	compiled := compiledStep{join: len(step.Join) > 0, checked: step.Expect != nil}

	sources := step.Join
	switch {
	case step.Approve != "" && compiled.join:
		return compiled, errs.With(Problem{Code: InvalidStep, Where: where, Err: fmt.Errorf("a step either approves or joins")})
	case step.Approve != "":
		sources = []string{step.Approve}
	case !compiled.join:
		return compiled, errs.With(Problem{Code: InvalidStep, Where: where, Err: fmt.Errorf("a step needs a condition to approve or join")})
	}

	for i, src := range sources {
		cond, err := notation.ParseCondition(src, s.resolver)
		if err != nil {
			errs = errs.With(Problem{Code: InvalidStep, Where: where + ".conditions[" + strconv.Itoa(i) + "]", Err: err})
			continue
		}
		compiled.conditions = append(compiled.conditions, cond)
	}
	for i, src := range step.Expect {
		fact, err := notation.ParseFact(src, s.resolver)
		if err != nil {
			errs = errs.With(Problem{Code: InvalidStep, Where: where + ".expect[" + strconv.Itoa(i) + "]", Err: err})
			continue
		}
		compiled.expect = append(compiled.expect, fact)
	}
	return compiled, errs
}
