package icongen

import (
	"fmt"
	"io"

	apperrors "github.com/leeforge/appicon/errors"
)

// CompleteMessage ends every finished run, whether or not items failed.
const CompleteMessage = "Icon generation complete!"

// Reporter receives progress as the generator runs.
type Reporter interface {
	Generated(icon Icon)
	Failed(icon Icon, err error)
	Fatal(err error)
	Complete(report *Report)
}

// ConsoleReporter prints the human readable transcript.
type ConsoleReporter struct {
	w io.Writer
}

func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (c *ConsoleReporter) Generated(icon Icon) {
	fmt.Fprintf(c.w, "Generated %s (%dx%d)\n", icon.Name, icon.Size, icon.Size)
}

func (c *ConsoleReporter) Failed(icon Icon, err error) {
	fmt.Fprintf(c.w, "Error generating %s: %v\n", icon.Name, cause(err))
}

func (c *ConsoleReporter) Fatal(err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeDirectory:
		fmt.Fprintf(c.w, "Error creating output directory: %v\n", cause(err))
	default:
		fmt.Fprintf(c.w, "Error opening image: %v\n", cause(err))
	}
}

func (c *ConsoleReporter) Complete(*Report) {
	fmt.Fprintln(c.w, CompleteMessage)
}

// cause strips the AppError wrapper so the transcript shows the
// underlying failure.
func cause(err error) error {
	if appErr := apperrors.FromError(err); appErr != nil && appErr.InnerError != nil {
		return appErr.InnerError
	}
	return err
}
