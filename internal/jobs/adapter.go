// Package jobs turns the ATS's job representation into the display model the careers page renders.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/careers-page/internal/greenhouse"
	"github.com/jonathan/careers-page/internal/types"
	cache "github.com/patrickmn/go-cache"
)

// DefaultSkills is the placeholder skill list shown while the ATS has no skills field for the job.
var DefaultSkills = []string{"React", "Typescript", "Next.js", "Python", "PostgreSQL"}

// DefaultDescription is shown when the job has no notes.
const DefaultDescription = "Recruiting is the highest-leverage action any company can take. " +
	"Hundreds of billions are spent on staffing and recruiting per year because of how difficult yet critical it is. " +
	"Hiring the best candidate for any role should take days, not months, and we believe we're best positioned " +
	"to solve this at scale with our AI-enabled recruiting marketplace."

// Source returns the raw ATS JSON for a job. *greenhouse.Client satisfies it.
type Source interface {
	GetJob(ctx context.Context, jobID string) (json.RawMessage, error)
}

// FetchError reports a failed or unusable job fetch. Status is the upstream HTTP status when
// the ATS answered, otherwise 0.
type FetchError struct {
	JobID   string
	Status  int
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to fetch job %s: %s: %v", e.JobID, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to fetch job %s: %s", e.JobID, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Options configures an Adapter.
type Options struct {
	Skills      []string
	Description string
	// CacheTTL keeps adapted postings in memory. Zero disables caching.
	CacheTTL time.Duration
}

// Adapter fetches jobs through a Source and converts them to types.JobPosting.
type Adapter struct {
	source      Source
	skills      []string
	description string
	cache       *cache.Cache
}

// NewAdapter creates an adapter. Empty options fall back to DefaultSkills and DefaultDescription.
func NewAdapter(source Source, opts Options) *Adapter {
	a := &Adapter{
		source:      source,
		skills:      opts.Skills,
		description: opts.Description,
	}
	if len(a.skills) == 0 {
		a.skills = DefaultSkills
	}
	if a.description == "" {
		a.description = DefaultDescription
	}
	if opts.CacheTTL > 0 {
		a.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return a
}

// Fetch returns the display-ready posting for jobID. The returned value is shared with the
// cache and must not be modified.
func (a *Adapter) Fetch(ctx context.Context, jobID string) (*types.JobPosting, error) {
	if a.cache != nil {
		if cached, ok := a.cache.Get(jobID); ok {
			return cached.(*types.JobPosting), nil
		}
	}

	raw, err := a.source.GetJob(ctx, jobID)
	if err != nil {
		fetchErr := &FetchError{JobID: jobID, Message: "upstream request failed", Cause: err}
		var upstream *greenhouse.UpstreamError
		if errors.As(err, &upstream) {
			fetchErr.Status = upstream.Status
			fetchErr.Message = fmt.Sprintf("upstream returned %d", upstream.Status)
		}
		return nil, fetchErr
	}

	posting, err := a.Build(raw)
	if err != nil {
		return nil, &FetchError{JobID: jobID, Message: "malformed job body", Cause: err}
	}

	if a.cache != nil {
		a.cache.SetDefault(jobID, posting)
	}
	return posting, nil
}

// Build converts raw Harvest job JSON into a posting.
func (a *Adapter) Build(raw json.RawMessage) (*types.JobPosting, error) {
	var job types.HarvestJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if job.ID == 0 && job.Name == "" {
		return nil, fmt.Errorf("job body has neither id nor name")
	}

	posting := &types.JobPosting{
		ID:     job.ID,
		Title:  job.Name,
		Salary: salaryRange(job.KeyedCustomFields),
		Skills: job.Skills,
	}
	if len(posting.Skills) == 0 {
		posting.Skills = append([]string(nil), a.skills...)
	}

	for _, office := range job.Offices {
		posting.Offices = append(posting.Offices, types.Office{
			ID:       office.ID,
			Name:     office.Name,
			Location: locationName(office.Location),
		})
	}
	posting.Location = locationName(job.Location)

	posting.Description = a.description
	if job.Notes != nil && strings.TrimSpace(*job.Notes) != "" {
		text, err := PlainText(*job.Notes)
		if err != nil {
			return nil, err
		}
		if text != "" {
			posting.Description = text
		}
	}

	return posting, nil
}

func salaryRange(fields *types.KeyedCustomFields) *types.Range {
	if fields == nil || fields.SalaryRange == nil || fields.SalaryRange.Value == nil {
		return nil
	}
	minValue, okMin := fields.SalaryRange.Value.MinValue.Float()
	maxValue, okMax := fields.SalaryRange.Value.MaxValue.Float()
	if !okMin || !okMax {
		return nil
	}
	return &types.Range{Min: minValue, Max: maxValue}
}

func locationName(loc *types.HarvestLocation) string {
	if loc == nil || loc.Name == nil {
		return ""
	}
	return *loc.Name
}

// OfficeNames joins office names for the page header, e.g. "San Francisco / New York".
func OfficeNames(p *types.JobPosting) string {
	names := make([]string, 0, len(p.Offices))
	for _, o := range p.Offices {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return strings.Join(names, " / ")
}

// SalaryLabel renders the salary line, falling back to "Competitive".
func SalaryLabel(p *types.JobPosting) string {
	if p.Salary == nil || p.Salary.Min == 0 || p.Salary.Max == 0 {
		return "Competitive"
	}
	return fmt.Sprintf("$%s - $%s", formatNumber(p.Salary.Min), formatNumber(p.Salary.Max))
}

// EquityLabel renders the equity line, "N/A" when unknown.
func EquityLabel(p *types.JobPosting) string {
	if p.Equity == nil || (p.Equity.Min == 0 && p.Equity.Max == 0) {
		return "N/A"
	}
	return fmt.Sprintf("%s - %s", orNA(p.Equity.Min), orNA(p.Equity.Max))
}

// DeadlineLabel renders the application deadline, "N/A" when unset.
func DeadlineLabel(p *types.JobPosting) string {
	if p.ApplicationDeadline == "" {
		return "N/A"
	}
	return p.ApplicationDeadline
}

// Paragraphs splits the description on newlines for display.
func Paragraphs(p *types.JobPosting) []string {
	var out []string
	for _, line := range strings.Split(p.Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func orNA(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
