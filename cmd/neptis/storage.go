package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"neptis/internal/browser"
	"neptis/internal/client"
	"neptis/internal/models"
)

const serverJobPoll = 2 * time.Second

var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Manage storage points (mounts) on the server",
}

var pointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List storage points and their usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		mounts, err := c.ListMounts(cmd.Context())
		if err != nil {
			return err
		}
		if len(mounts) == 0 {
			fmt.Println("No storage points.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDATA\tREPO\tLAST BACKUP\tLOCKED")
		for _, m := range mounts {
			last := "never"
			if m.LastBackup != nil {
				last = time.Unix(*m.LastBackup, 0).Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Name,
				usage(m.DataUsed, m.DataMax), usage(m.RepoUsed, m.RepoMax), last, mark(m.Locked))
		}
		return w.Flush()
	},
}

func usage(used, limit int64) string {
	return browser.FormatSize(used) + " / " + browser.FormatSize(limit)
}

var pointCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a storage point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataGB, _ := cmd.Flags().GetInt64("data-gb")
		repoGB, _ := cmd.Flags().GetInt64("repo-gb")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		mount := models.Mount{Name: args[0], DataMax: dataGB << 30, RepoMax: repoGB << 30}
		if err := c.CreateMount(cmd.Context(), mount); err != nil {
			return err
		}
		fmt.Printf("Created storage point %s\n", mount.Name)
		return nil
	},
}

var pointDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a storage point and its data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		if !yes && !confirm(fmt.Sprintf("Delete storage point %s and all of its data?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := c.DeleteMount(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted storage point %s\n", args[0])
		return nil
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage snapshots of a storage point",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list <point>",
	Short: "List snapshots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		snaps, err := c.ListSnapshots(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSIZE\tTAGS")
		for _, s := range snaps {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.CreatedAt.Local().Format(time.DateTime),
				browser.FormatSize(s.Size), strings.Join(s.Tags, ","))
		}
		return w.Flush()
	},
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create <point>",
	Short: "Create a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		snap, err := c.CreateSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created snapshot %s of %s\n", snap.ID, args[0])
		return nil
	},
}

// serverJobCmd builds the backup, check and restore commands, which only
// differ in how the job is started.
func serverJobCmd(use, short string, start func(ctx context.Context, c *client.Client, cmd *cobra.Command, mount string) (*models.ServerJob, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <point>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wait, _ := cmd.Flags().GetBool("wait")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			c, _, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			job, err := start(cmd.Context(), c, cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Started %s job %s on %s\n", use, job.ID, args[0])
			if !wait {
				return nil
			}
			return waitServerJob(cmd.Context(), c, job)
		},
	}
	cmd.Flags().BoolP("wait", "w", false, "Wait for the job to finish")
	return cmd
}

func waitServerJob(ctx context.Context, c *client.Client, job *models.ServerJob) error {
	var err error
	for !job.IsTerminal() {
		fmt.Printf("\r%s %s: %5.1f%%", job.Kind, job.Status, job.Progress*100)
		select {
		case <-ctx.Done():
			fmt.Println()
			return ctx.Err()
		case <-time.After(serverJobPoll):
		}
		if job, err = c.GetJob(ctx, job.ID); err != nil {
			fmt.Println()
			return err
		}
	}
	fmt.Printf("\r%s %s: %5.1f%%\n", job.Kind, job.Status, job.Progress*100)
	if job.Status == models.ServerJobFailed {
		return fmt.Errorf("job %s failed: %s", job.ID, strings.Join(job.Errors, "; "))
	}
	return nil
}

var backupCmd = serverJobCmd("backup", "Back up a storage point on the server",
	func(ctx context.Context, c *client.Client, _ *cobra.Command, mount string) (*models.ServerJob, error) {
		return c.StartBackup(ctx, mount)
	})

var checkCmd = serverJobCmd("check", "Verify the backup repository of a storage point",
	func(ctx context.Context, c *client.Client, _ *cobra.Command, mount string) (*models.ServerJob, error) {
		return c.StartCheck(ctx, mount)
	})

var restoreCmd = serverJobCmd("restore", "Restore a snapshot of a storage point",
	func(ctx context.Context, c *client.Client, cmd *cobra.Command, mount string) (*models.ServerJob, error) {
		snapshot, _ := cmd.Flags().GetString("snapshot")
		target, _ := cmd.Flags().GetString("target")
		if snapshot == "" {
			return nil, fmt.Errorf("--snapshot is required")
		}
		return c.StartRestore(ctx, mount, models.RestoreRequest{Snapshot: snapshot, Target: target})
	})

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List backup, check and restore jobs on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		jobs, err := c.ListJobs(cmd.Context())
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tPOINT\tSTATUS\tPROGRESS\tSTARTED")
		for _, j := range jobs {
			started := ""
			if j.StartedAt != nil {
				started = j.StartedAt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n", j.ID, j.Kind, j.Mount, j.Status, j.Progress*100, started)
		}
		return w.Flush()
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show messages from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		unread, _ := cmd.Flags().GetBool("unread")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		msgs, err := c.ListMessages(cmd.Context(), unread)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No messages.")
			return nil
		}
		for _, m := range msgs {
			status := " "
			if !m.Read {
				status = "*"
			}
			fmt.Printf("%s %s  %s\n", status, m.CreatedAt.Local().Format(time.DateTime), m.Subject)
			if m.Text != "" {
				fmt.Printf("    %s\n", strings.ReplaceAll(strings.TrimSpace(m.Text), "\n", "\n    "))
			}
		}
		return nil
	},
}

func init() {
	pointCmd.AddCommand(pointListCmd)
	pointCmd.AddCommand(pointCreateCmd)
	pointCmd.AddCommand(pointDeleteCmd)
	pointCreateCmd.Flags().Int64("data-gb", 100, "Data quota in GiB")
	pointCreateCmd.Flags().Int64("repo-gb", 100, "Backup repository quota in GiB")
	pointDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotCreateCmd)

	restoreCmd.Flags().String("snapshot", "", "Snapshot to restore")
	restoreCmd.Flags().String("target", "", "Restore into this folder instead of in place")

	messagesCmd.Flags().Bool("unread", false, "Only show unread messages")

	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(messagesCmd)
}
