package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"neptis/internal/browser"
	"neptis/internal/models"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Inspect and control transfers run by the background service",
}

var transferListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent transfer jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		jobs, err := a.daemon().ListJobs(cmd.Context())
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No transfers.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tACTION\tSTATE\tPROGRESS\tSTARTED")
		for _, j := range jobs {
			started := ""
			if j.StartDate != nil {
				started = j.StartDate.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s/%s/%s\t%s\t%s\t%s\n", j.ID,
				j.ServerName, j.ScheduleName, j.ActionName, j.State(), progress(j), started)
		}
		return w.Flush()
	},
}

func progress(j *models.TransferJob) string {
	s := j.LastStats
	if s == nil {
		return ""
	}
	if s.OnBackup {
		return fmt.Sprintf("backup %.0f%%", s.BackupProgress*100)
	}
	return fmt.Sprintf("%.0f%% of %s", s.Percentage(), browser.FormatSize(s.TotalBytes))
}

var transferGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one transfer job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		j, err := a.daemon().GetJob(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", j.ID)
		fmt.Fprintf(w, "Action:\t%s/%s/%s\n", j.ServerName, j.ScheduleName, j.ActionName)
		fmt.Fprintf(w, "State:\t%s\n", j.State())
		fmt.Fprintf(w, "Local:\t%s\n", j.LocalFolder)
		fmt.Fprintf(w, "Remote:\t%s\n", j.RemoteFolder)
		if j.StartDate != nil {
			fmt.Fprintf(w, "Started:\t%s\n", j.StartDate.Local().Format(time.DateTime))
		}
		if j.EndDate != nil {
			fmt.Fprintf(w, "Ended:\t%s\n", j.EndDate.Local().Format(time.DateTime))
		}
		if p := progress(j); p != "" {
			fmt.Fprintf(w, "Progress:\t%s\n", p)
		}
		if len(j.Warnings) > 0 {
			fmt.Fprintf(w, "Warnings:\t%s\n", strings.Join(j.Warnings, "\n\t"))
		}
		if len(j.FatalErrors) > 0 {
			fmt.Fprintf(w, "Errors:\t%s\n", strings.Join(j.FatalErrors, "\n\t"))
		}
		return w.Flush()
	},
}

var transferCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a running transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.daemon().CancelJob(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Cancelled transfer %s\n", args[0])
		return nil
	},
}

var transferStartCmd = &cobra.Command{
	Use:   "start <schedule>",
	Short: "Run every enabled action of a schedule now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.profile(cmd.Context())
		if err != nil {
			return err
		}
		if _, err := a.repo.GetSchedule(cmd.Context(), p.ServerName, args[0]); err != nil {
			return err
		}
		if err := a.daemon().StartScheduleNow(cmd.Context(), p.ServerName, args[0]); err != nil {
			return err
		}
		fmt.Printf("Schedule %s/%s queued\n", p.ServerName, args[0])
		return nil
	},
}

func init() {
	transferCmd.AddCommand(transferListCmd)
	transferCmd.AddCommand(transferGetCmd)
	transferCmd.AddCommand(transferCancelCmd)
	transferCmd.AddCommand(transferStartCmd)

	rootCmd.AddCommand(transferCmd)
}
