package scenario

import (
	"fmt"
	"log/slog"
	"strings"
)

type ErrCode int

const (
	None ErrCode = iota
	DuplicateVariable
	InvalidVariable
	InvalidTypeFact
	InvalidImplication
	InvalidStep
)

// Problem is something wrong with a single entry of a scenario file
type Problem struct {
	Code ErrCode
	// Where is the path of the offending entry, like 'implications[2]'
	Where string
	Err   error
}

func (p Problem) Error() string {
	return fmt.Sprintf("(E%03d) %s: %v", p.Code, p.Where, p.Err)
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Errors collects every Problem found while validating a scenario
type Errors struct {
	problems []Problem
}

func (r *Errors) With(problems ...Problem) *Errors {
	if r == nil {
		return &Errors{problems: problems}
	}
	r.problems = append(r.problems, problems...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.problems) == 0 {
		return r
	}
	return r.With(err.problems...)
}

func (r *Errors) Problems() []Problem {
	if r == nil {
		return nil
	}
	return r.problems
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.problems) > 0
}

func (r *Errors) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("invalid scenario:")
	for _, p := range r.Problems() {
		sb.WriteString("\n  ")
		sb.WriteString(p.Error())
	}
	return sb.String()
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, p := range r.Problems() {
		vals = append(vals, slog.Attr{
			Key:   fmt.Sprint("e", i),
			Value: slog.StringValue(p.Error()),
		})
	}
	return slog.GroupValue(vals...)
}
