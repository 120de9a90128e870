package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/careers-page/internal/candidate"
	"github.com/jonathan/careers-page/internal/files"
	"github.com/jonathan/careers-page/internal/form"
	"github.com/jonathan/careers-page/internal/observability"
	"github.com/jonathan/careers-page/internal/schemas"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit an application from the terminal",
	Long:  "Validate an application with the same rules as the web form, build the candidate payload and submit it to Greenhouse Harvest.",
	RunE:  runApply,
}

type applyOptions struct {
	firstName   string
	lastName    string
	email       string
	phone       string
	linkedIn    string
	portfolio   string
	resume      string
	coverLetter string
	jobID       int64
	dryRun      bool
}

var applyOpts applyOptions

func init() {
	f := applyCmd.Flags()
	f.StringVar(&applyOpts.firstName, "first-name", "", "Candidate first name")
	f.StringVar(&applyOpts.lastName, "last-name", "", "Candidate last name")
	f.StringVar(&applyOpts.email, "email", "", "Candidate email address")
	f.StringVar(&applyOpts.phone, "phone", "", "Candidate phone number (US, any format)")
	f.StringVar(&applyOpts.linkedIn, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&applyOpts.portfolio, "portfolio", "", "Portfolio or personal website URL")
	f.StringVar(&applyOpts.resume, "resume", "", "Path to the resume (PDF, DOC or DOCX, max 5MB)")
	f.StringVar(&applyOpts.coverLetter, "cover-letter", "", "Path to an optional cover letter")
	f.Int64Var(&applyOpts.jobID, "job-id", 0, "Job to apply for (overrides JOB_ID)")
	f.BoolVar(&applyOpts.dryRun, "dry-run", false, "Validate and print the candidate without submitting")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if applyOpts.jobID != 0 {
		cfg.JobID = applyOpts.jobID
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	state, err := applicationState(applyOpts)
	if err != nil {
		return err
	}
	if err := state.Submit(); err != nil {
		var errs form.Errors
		if errors.As(err, &errs) {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintFieldErrors(errs)
		}
		return fmt.Errorf("application is invalid")
	}
	for _, att := range []*files.Attachment{state.Resume, state.CoverLetter} {
		if att != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Attaching %s: %s\n", att.Role, att.Describe())
		}
	}

	payload, err := candidate.Build(ctx, cfg.JobID, state)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode candidate: %w", err)
	}
	if err := schemas.ValidateCandidate(body); err != nil {
		return fmt.Errorf("candidate payload rejected: %w", err)
	}

	if applyOpts.dryRun {
		observability.NewPrinter(out).PrintCandidate(payload)
		return nil
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := client.CreateCandidate(ctx, payload); err != nil {
		return fmt.Errorf("failed to submit application: %w", err)
	}

	_, err = fmt.Fprintln(out, "Application submitted successfully")
	return err
}

// applicationState fills a form.State from the flags, loading attachments from disk.
func applicationState(opts applyOptions) (*form.State, error) {
	state := &form.State{}
	for field, value := range map[string]string{
		form.FieldFirstName: opts.firstName,
		form.FieldLastName:  opts.lastName,
		form.FieldEmail:     opts.email,
		form.FieldPhone:     opts.phone,
		form.FieldLinkedIn:  opts.linkedIn,
		form.FieldPortfolio: opts.portfolio,
	} {
		if _, err := state.Set(field, value); err != nil {
			return nil, err
		}
	}

	for field, upload := range map[string]struct {
		role files.Role
		path string
	}{
		form.FieldResume:      {files.RoleResume, opts.resume},
		form.FieldCoverLetter: {files.RoleCoverLetter, opts.coverLetter},
	} {
		if upload.path == "" {
			continue
		}
		att, err := files.FromPath(upload.role, upload.path)
		if err != nil {
			return nil, err
		}
		if _, err := state.SetFile(field, att); err != nil {
			return nil, err
		}
	}
	return state, nil
}
