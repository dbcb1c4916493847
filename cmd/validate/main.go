// Command validate checks an attendee roster offline before a real run. It
// never calls the civic information service and never writes letters. It
// verifies that the required columns are present, that every registration
// time parses, and that attendee ids are usable as file names. When a template
// is given it is rendered once per row against fallback guidance so unknown
// keys surface before the run.
//
// Usage:
//
//	go run ./cmd/validate -input event_attendees.csv -template form_letter.html.tmpl
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PivtoranisV/event-manager/internal/adapter/letter"
	"github.com/PivtoranisV/event-manager/internal/adapter/roster"
	"github.com/PivtoranisV/event-manager/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// report collects informational counts that never fail validation.
type report struct {
	rows           int
	invalidPhones  int
	paddedZipcodes int
	duplicateIDs   []string
}

func main() {
	input := flag.String("input", "event_attendees.csv", "attendee roster (.csv or .xlsx)")
	tmpl := flag.String("template", "", "optional letter template to render against each row")
	flag.Parse()

	if *input == "" || flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(*input, *tmpl, os.Stdout))
}

func run(inputPath, templatePath string, out io.Writer) int {
	fmt.Fprintln(out, "=== Roster Validation ===")
	fmt.Fprintln(out)

	src, err := roster.Open(inputPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	defer src.Close()

	var renderer *letter.Renderer
	if templatePath != "" {
		renderer, err = letter.NewRenderer(templatePath)
		if err != nil {
			fmt.Fprintf(out, "FATAL: %v\n", err)
			return 1
		}
	}

	times := &phase{name: "Registration timestamps"}
	ids := &phase{name: "Attendee ids"}
	render := &phase{name: "Letter template"}
	phases := []*phase{times, ids}
	if renderer != nil {
		phases = append(phases, render)
	}

	var rep report
	seen := make(map[string]int)

	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(out, "FATAL: %v\n", err)
			return 1
		}
		rep.rows++

		a := domain.Attendee{
			Record:      rec,
			Contact:     domain.CleanContact(rec),
			Legislators: domain.FallbackList(domain.ReasonDisabled, nil),
		}
		if a.Contact.Phone == domain.InvalidPhoneNumber {
			rep.invalidPhones++
		}
		if a.Contact.Zipcode != rec.Zipcode {
			rep.paddedZipcodes++
		}

		validateTimestamp(times, a)
		validateID(ids, rec, seen, &rep)
		if renderer != nil {
			if _, err := renderer.RenderAttendee(a); err != nil {
				render.errorf("line %d: %v", rec.Line, err)
			}
		}
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d, invalid phone numbers: %d, zipcodes padded or truncated: %d\n",
		rep.rows, rep.invalidPhones, rep.paddedZipcodes)
	if len(rep.duplicateIDs) > 0 {
		fmt.Fprintf(out, "Duplicate ids (later letters overwrite earlier ones): %s\n", strings.Join(rep.duplicateIDs, ", "))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func validateTimestamp(p *phase, a domain.Attendee) {
	if _, err := domain.ParseRegistrationTime(a.Record.RegistrationTime); err != nil {
		p.errorf("line %d (%s): %v", a.Record.Line, a.Record.FirstName, err)
	}
}

func validateID(p *phase, rec domain.AttendeeRecord, seen map[string]int, rep *report) {
	switch {
	case rec.ID == "":
		p.errorf("line %d: empty id", rec.Line)
		return
	case strings.ContainsAny(rec.ID, `/\`):
		p.errorf("line %d: id %q contains a path separator", rec.Line, rec.ID)
		return
	}
	seen[rec.ID]++
	if seen[rec.ID] == 2 {
		rep.duplicateIDs = append(rep.duplicateIDs, rec.ID)
	}
}
