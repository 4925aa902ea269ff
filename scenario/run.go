package scenario

import (
	"slices"

	"github.com/cottand/flowfacts/dfa"
	"github.com/cottand/flowfacts/logic"
	"github.com/cottand/flowfacts/util"
)

type Report struct {
	Implications []string
	Steps        []StepReport
	// TypeFacts known once every step ran
	TypeFacts []string
}

type StepReport struct {
	// Conditions approved by the step, more than one for a join
	Conditions []string
	Join       bool
	// Facts the step produced: the approved facts, or the
	// type facts after the join
	Facts      []string
	Checked    bool
	Missing    []string
	Unexpected []string
}

func (r StepReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0
}

func (r *Report) OK() bool {
	return !slices.ContainsFunc(r.Steps, func(step StepReport) bool { return !step.OK() })
}

// Run replays the scenario. Each step starts from the flow left by
// the previous one, with the facts it approved recorded.
func (s *Scenario) Run() (*Report, error) {
	if !s.validated {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	flow := logic.NewFlow()
	for _, tf := range s.typeFacts {
		flow = flow.AddTypeFact(tf)
	}
	for _, implication := range s.implications {
		flow = flow.AddImplication(implication)
	}

	report := &Report{Implications: util.Render(flow.AllImplications())}
	for _, step := range s.steps {
		var produced []dfa.Fact
		if step.join {
			branches := make([]logic.Flow, 0, len(step.conditions))
			for _, cond := range step.conditions {
				branches = append(branches, flow.ApproveInto(cond))
			}
			flow = logic.Join(branches...)
			for _, tf := range flow.TypeFacts() {
				produced = append(produced, tf)
			}
		} else {
			cond := step.conditions[0]
			produced = flow.Approve(cond)
			flow = flow.ApproveInto(cond)
		}

		stepReport := StepReport{
			Conditions: util.Render(step.conditions),
			Join:       step.join,
			Facts:      util.Render(produced),
			Checked:    step.checked,
		}
		if step.checked {
			stepReport.Missing = util.Render(missingFrom(produced, step.expect))
			stepReport.Unexpected = util.Render(missingFrom(step.expect, produced))
		}
		logger.Debug("ran step", "conditions", stepReport.Conditions, "facts", stepReport.Facts, "ok", stepReport.OK())
		report.Steps = append(report.Steps, stepReport)
	}
	report.TypeFacts = util.Render(flow.TypeFacts())
	return report, nil
}

// missingFrom returns the facts of want that are not in have
func missingFrom(have, want []dfa.Fact) []dfa.Fact {
	var missing []dfa.Fact
	for _, f := range want {
		if !slices.ContainsFunc(have, func(other dfa.Fact) bool { return dfa.EqualFacts(f, other) }) {
			missing = append(missing, f)
		}
	}
	return missing
}
