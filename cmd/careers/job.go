package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/observability"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Fetch the configured job and print it as JSON",
	Long:  "Fetch a job from Greenhouse Harvest and print either the display model the page renders or the raw upstream JSON.",
	RunE:  runJob,
}

var (
	jobID     int64
	jobRaw    bool
	jobPretty bool
)

func init() {
	jobCmd.Flags().Int64Var(&jobID, "id", 0, "Job ID to fetch (overrides JOB_ID)")
	jobCmd.Flags().BoolVar(&jobRaw, "raw", false, "Print the upstream JSON unmodified")
	jobCmd.Flags().BoolVar(&jobPretty, "pretty", false, "Print a human-readable summary instead of JSON")
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if jobID != 0 {
		cfg.JobID = jobID
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id := cfg.JobIDString()
	out := cmd.OutOrStdout()

	if jobRaw {
		raw, err := client.GetJob(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch job %s: %w", id, err)
		}
		_, err = fmt.Fprintln(out, string(raw))
		return err
	}

	adapter := jobs.NewAdapter(client, jobs.Options{Skills: cfg.Skills, Description: cfg.Description})
	posting, err := adapter.Fetch(ctx, id)
	if err != nil {
		return err
	}

	if jobPretty {
		observability.NewPrinter(out).PrintJobPosting(posting)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(posting)
}
