// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/careers-page/internal/files"
	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintJobPosting outputs the posting the way the careers page lays it out.
func (p *Printer) PrintJobPosting(posting *types.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", posting.Title))
	if offices := jobs.OfficeNames(posting); offices != "" {
		sb.WriteString(fmt.Sprintf("Offices:  %s\n", offices))
	}
	sb.WriteString(fmt.Sprintf("Salary:   %s\n", jobs.SalaryLabel(posting)))
	sb.WriteString(fmt.Sprintf("Equity:   %s\n", jobs.EquityLabel(posting)))
	sb.WriteString(fmt.Sprintf("Apply by: %s\n", jobs.DeadlineLabel(posting)))

	if len(posting.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(posting.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", posting.Skills[i]))
		}
		if len(posting.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(posting.Skills)-maxItemsToShow))
		}
	}

	paragraphs := jobs.Paragraphs(posting)
	if len(paragraphs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paragraphs[0])
		if len(paragraphs) > 1 {
			sb.WriteString(fmt.Sprintf("\n... and %d more paragraphs", len(paragraphs)-1))
		}
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidate outputs a candidate payload without attachment contents.
func (p *Printer) PrintCandidate(payload *types.CandidatePayload) {
	if payload == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s %s\n", payload.FirstName, payload.LastName))
	for _, email := range payload.EmailAddresses {
		sb.WriteString(fmt.Sprintf("Email:     %s (%s)\n", email.Value, email.Type))
	}
	for _, phone := range payload.PhoneNumbers {
		sb.WriteString(fmt.Sprintf("Phone:     %s (%s)\n", phone.Value, phone.Type))
	}
	for _, social := range payload.SocialMediaAddresses {
		sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", social.Value))
	}
	for _, site := range payload.WebsiteAddresses {
		sb.WriteString(fmt.Sprintf("Website:   %s\n", site.Value))
	}

	for _, app := range payload.Applications {
		sb.WriteString(fmt.Sprintf("\nJob %d attachments:\n", app.JobID))
		for _, att := range app.Attachments {
			// base64 inflates by 4/3
			size := files.FormatSize(int64(len(att.Content)) * 3 / 4)
			sb.WriteString(fmt.Sprintf("  • %s: %s (%s, ~%s)\n", att.Type, att.Filename, att.ContentType, size))
		}
	}

	p.printBox("CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFieldErrors outputs validation messages sorted by field.
func (p *Printer) PrintFieldErrors(errs map[string]string) {
	if len(errs) == 0 {
		return
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf("✗ %s: %s\n", field, errs[field]))
	}

	p.printBox("APPLICATION INVALID", strings.TrimSuffix(sb.String(), "\n"))
}
