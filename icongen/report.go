package icongen

import (
	"time"

	apperrors "github.com/leeforge/appicon/errors"
)

// Result is the outcome of one icon.
type Result struct {
	Icon     Icon
	Path     string
	Err      error
	Duration time.Duration
}

// OK reports whether the icon was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of one run in table order.
type Report struct {
	Output  string
	Results []Result
	// Manifest is the path of the written Contents.json, if any.
	Manifest string

	errs *apperrors.ErrorChain
}

func newReport(output string) *Report {
	return &Report{
		Output: output,
		errs:   apperrors.NewErrorChain(),
	}
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Err != nil {
		r.errs.Add(apperrors.FromError(res.Err))
	}
}

// Generated returns the results that were written.
func (r *Report) Generated() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results that were skipped.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Err returns nil when every icon was written, otherwise an
// *errors.ErrorChain holding each item error.
func (r *Report) Err() error {
	if r == nil || !r.errs.HasErrors() {
		return nil
	}
	return r.errs
}
