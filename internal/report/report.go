// Package report implements the top-down report-level syntax state
// machine: it tokenizes a raw METAR/TAF report, classifies and
// dispatches each token in turn, and folds the resulting groups
// together via group.Combine, while tracking the overall report type
// and any terminal syntax error.
package report

import (
	"strings"

	"metartaf/internal/dispatch"
	"metartaf/internal/group"
)

// GroupResult pairs a recognized group with the report part it was
// dispatched under and the raw source token it came from. Trace is
// populated only by ExtendedParse.
type GroupResult struct {
	Group  group.Group
	Part   group.ReportPart
	Source string
	Trace  *dispatch.TraceResult
}

// Result is the outcome of parsing one report.
type Result struct {
	ReportType ReportType
	Error      Error
	Groups     []GroupResult
}

// Parse runs the state machine over reportText using the default
// dispatcher and returns the resulting groups and terminal error.
func Parse(reportText string) Result {
	d := dispatch.Default()
	return parse(reportText, func(token string, part group.ReportPart) (group.Group, *dispatch.TraceResult) {
		g, ok := d.Dispatch(token, part)
		if !ok {
			return nil, nil
		}
		return g, nil
	})
}

// ExtendedParse behaves like Parse but additionally records, on each
// GroupResult, the full dispatch trace -- every recognizer probed and
// whether it matched -- for the review UI's explain view.
func ExtendedParse(reportText string) Result {
	d := dispatch.Default()
	return parse(reportText, func(token string, part group.ReportPart) (group.Group, *dispatch.TraceResult) {
		g, trace := d.DispatchWithTrace(token, part)
		if !trace.Matched {
			return nil, trace
		}
		return g, trace
	})
}

// ParseWithDispatcher runs the state machine using a caller-supplied
// dispatcher, letting tests and the review UI substitute a
// restricted or instrumented recognizer set.
func ParseWithDispatcher(reportText string, d *dispatch.Dispatcher) Result {
	return parse(reportText, func(token string, part group.ReportPart) (group.Group, *dispatch.TraceResult) {
		g, ok := d.Dispatch(token, part)
		if !ok {
			return nil, nil
		}
		return g, nil
	})
}

func tokenize(reportText string) []string {
	fields := strings.Fields(reportText)
	if len(fields) == 0 {
		return fields
	}
	last := fields[len(fields)-1]
	fields[len(fields)-1] = strings.TrimSuffix(last, "=")
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

type dispatchFunc func(token string, part group.ReportPart) (group.Group, *dispatch.TraceResult)

func parse(reportText string, dispatchToken dispatchFunc) Result {
	tokens := tokenize(reportText)
	result := Result{ReportType: ReportUnknown}

	if len(tokens) == 0 {
		result.Error = ErrEmptyReport
		return result
	}

	state := StateReportTypeOrLocation
	var lastGroup group.Group

	i := 0
	for i < len(tokens) {
		token := tokens[i]

		if state.IsTerminal() {
			_, result.ReportType, result.Error, _ = transition(state, classify(token), result.ReportType)
			return result
		}

		cat := classify(token)
		nextState, rt, err, reparse := transition(state, cat, result.ReportType)
		result.ReportType = rt

		if err != ErrNone {
			result.Error = err
			state = StateError
			return result
		}

		if reparse {
			state = nextState
			continue
		}

		part := nextState.ReportPart()
		g, trace := dispatchToken(token, part)
		if g != nil {
			if lastGroup != nil {
				if merged, combined := group.Combine(lastGroup, g); combined {
					prevSource := result.Groups[len(result.Groups)-1].Source
					result.Groups[len(result.Groups)-1] = GroupResult{Group: merged, Part: part, Source: prevSource + " " + token, Trace: trace}
					lastGroup = merged
					state = nextState
					i++
					continue
				}
			}
			result.Groups = append(result.Groups, GroupResult{Group: g, Part: part, Source: token, Trace: trace})
			lastGroup = g
		}

		state = nextState
		i++
	}

	if !state.IsAcceptableEnd() {
		result.Error = ErrUnexpectedReportEnd
	}
	return result
}
