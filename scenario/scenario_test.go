package scenario

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

func TestRunSmartCastScenario(t *testing.T) {
	f, err := os.Open("testdata/smart_cast.yaml")
	require.NoError(t, err)
	defer f.Close()

	s, err := Load(f)
	require.NoError(t, err)
	report, err := s.Run()
	require.NoError(t, err)

	assert.True(t, report.OK(), "report: %+v", report)
	assert.Equal(t, []string{
		"s != Null -> s: {CharSequence, String}",
		"s == Null -> s: {Nothing?}",
		"$1 == True -> s: {String}",
		"$1 == True -> s != Null",
		"$1 == False -> any: {Int}",
	}, report.Implications)

	require.Len(t, report.Steps, 3)
	assert.Equal(t, []string{"s: {String}", "s != Null", "s: {CharSequence, String}"}, report.Steps[0].Facts)
	assert.Equal(t, []string{"$1 == False"}, report.Steps[1].Conditions)
	assert.True(t, report.Steps[2].Join)
	assert.Equal(t, []string{"s: {CharSequence, String}", "any: {Comparable, Int}"}, report.TypeFacts)
}

func TestJoinDropsOneSidedNarrowing(t *testing.T) {
	s := load(t, `
variables:
  - {name: x, type: "Any?"}
implications:
  - "x != Null -> x: {Any}"
steps:
  - join: ["x != Null", "x == Null"]
    expect: []
`)
	report, err := s.Run()
	require.NoError(t, err)
	assert.True(t, report.OK(), "report: %+v", report)
	assert.Empty(t, report.TypeFacts)
}

func TestRunReportsMismatches(t *testing.T) {
	s := load(t, `
variables:
  - {name: x}
implications:
  - "x == True -> x: {Int}"
steps:
  - approve: "x == True"
    expect: ["x: {String}"]
  - approve: "x == False"
`)
	report, err := s.Run()
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, []string{"x: {String}"}, report.Steps[0].Missing)
	assert.Equal(t, []string{"x: {Int}"}, report.Steps[0].Unexpected)
	assert.False(t, report.Steps[1].Checked)
	assert.True(t, report.Steps[1].OK())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := load(t, `
variables:
  - {name: x}
  - {name: x}
  - {name: "$weird"}
  - {name: f, synthetic: true, type: Bool}
typeFacts:
  - "x == True"
implications:
  - "f: {Int} -> x: {Int}"
  - "x != Null -> y: {Int}"
steps:
  - approve: "x == True"
    join: ["x == False"]
  - {}
  - approve: "x == Null"
    expect: ["nope"]
`)
	err := s.Validate()
	require.Error(t, err)

	var errs *Errors
	require.True(t, errors.As(err, &errs))
	var codes []ErrCode
	for _, p := range errs.Problems() {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []ErrCode{
		DuplicateVariable,
		InvalidVariable,
		InvalidVariable,
		InvalidTypeFact,
		InvalidImplication,
		InvalidImplication,
		InvalidStep,
		InvalidStep,
		InvalidStep,
	}, codes)
	assert.Contains(t, err.Error(), "(E001) variables[1]: variable 'x' is already declared")

	_, err = s.Run()
	assert.Error(t, err)
}

func TestSyntheticVariablesByNameAndRendering(t *testing.T) {
	s := load(t, `
variables:
  - {name: x, type: "Int?"}
  - {name: isNull, synthetic: true}
implications:
  - "isNull == False -> x != Null"
  - "$1 == False -> x: {Int}"
steps:
  - approve: "$1 == False"
    expect: ["x != Null", "x: {Int}"]
`)
	report, err := s.Run()
	require.NoError(t, err)
	assert.True(t, report.OK(), "report: %+v", report)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("variabels: []\n"))
	assert.Error(t, err)
}
