package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"neptis/internal/errs"
	"neptis/internal/models"
	"neptis/internal/paths"
	"neptis/internal/supervisor"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage transfer schedules of a server",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules and their actions",
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
		schedules, err := a.repo.ListSchedules(cmd.Context(), p.ServerName)
		if err != nil {
			return err
		}
		if len(schedules) == 0 {
			fmt.Printf("No schedules on %s.\n", p.ServerName)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, s := range schedules {
			next := "invalid cron"
			if c, err := supervisor.ParseCron(s.Cron); err == nil {
				next = c.Next(time.Now()).Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\tshare %s\tbackup %s\tnext %s\n",
				s.ScheduleName, s.Cron, s.ShareUser, yesNo(s.WantsBackup()), next)

			actions, err := a.repo.ListActions(cmd.Context(), p.ServerName, s.ScheduleName)
			if err != nil {
				return err
			}
			for _, act := range actions {
				state := "enabled"
				if !act.Enabled {
					state = "disabled"
				}
				fmt.Fprintf(w, "  %s\t%s\t-> %s\t%s\t\n", act.ActionName, act.LocalFolder, act.RemoteFolder, state)
			}
		}
		return w.Flush()
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cronExpr, _ := flags.GetString("cron")
		shareUser, _ := flags.GetString("share-user")
		backup, _ := flags.GetBool("backup")
		bwLimit, _ := flags.GetString("bwlimit")
		transfers, _ := flags.GetInt("transfers")
		checksum, _ := flags.GetBool("checksum")
		excludes, _ := flags.GetStringSlice("exclude")

		if _, err := supervisor.ParseCron(cronExpr); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.profile(cmd.Context())
		if err != nil {
			return err
		}

		s := &models.Schedule{
			ServerName:     p.ServerName,
			ScheduleName:   args[0],
			Cron:           cronExpr,
			ShareUser:      shareUser,
			BackupOnFinish: backup,
		}
		if s.SharePassword, err = promptPassword(fmt.Sprintf("Share password for %s: ", shareUser)); err != nil {
			return err
		}
		if backup {
			if s.UserPassword, err = promptPassword(fmt.Sprintf("Account password of %s (for post-transfer backups): ", shareUser)); err != nil {
				return err
			}
		}

		opts := &models.MoverOptions{Excludes: excludes}
		if flags.Changed("bwlimit") {
			opts.BwLimit = &bwLimit
		}
		if flags.Changed("transfers") {
			opts.Transfers = &transfers
		}
		if flags.Changed("checksum") {
			opts.Checksum = &checksum
		}
		if opts.BwLimit != nil || opts.Transfers != nil || opts.Checksum != nil || len(opts.Excludes) > 0 {
			s.MoverOptions = opts
		}

		if err := a.repo.SaveSchedule(cmd.Context(), s); err != nil {
			return err
		}
		fmt.Printf("Saved schedule %s on %s\n", s.ScheduleName, s.ServerName)
		return nil
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a schedule and its actions",
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
		if err := a.repo.DeleteSchedule(cmd.Context(), p.ServerName, args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed schedule %s from %s\n", args[0], p.ServerName)
		return nil
	},
}

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manage the folder pairs of a schedule",
}

var actionAddCmd = &cobra.Command{
	Use:   "add <schedule> <name> <local-folder> <remote-folder>",
	Short: "Add or update an action",
	Long:  "Add or update an action. The remote folder has the form /<point>/data/<path> or /<point>/repo/<path>.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		disabled, _ := cmd.Flags().GetBool("disabled")

		local, err := filepath.Abs(args[2])
		if err != nil {
			return err
		}
		if info, err := os.Stat(local); err != nil || !info.IsDir() {
			return errs.Errorf(errs.Configuration, "action.add", "local folder %s does not exist", local)
		}
		remote := paths.Clean(args[3])

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.profile(cmd.Context())
		if err != nil {
			return err
		}
		s, err := a.repo.GetSchedule(cmd.Context(), p.ServerName, args[0])
		if err != nil {
			return err
		}
		if _, err := paths.ShareRemote(s.ShareUser, remote); err != nil {
			return errs.E(errs.Configuration, "action.add", err)
		}

		act := &models.Action{
			ServerName:   p.ServerName,
			ScheduleName: s.ScheduleName,
			ActionName:   args[1],
			LocalFolder:  local,
			RemoteFolder: remote,
			Enabled:      !disabled,
		}
		if err := a.repo.SaveAction(cmd.Context(), act); err != nil {
			return err
		}
		fmt.Printf("Saved action %s: %s -> %s\n", act.ActionName, act.LocalFolder, act.RemoteFolder)
		return nil
	},
}

var actionRemoveCmd = &cobra.Command{
	Use:   "remove <schedule> <name>",
	Short: "Remove an action",
	Args:  cobra.ExactArgs(2),
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
		if err := a.repo.DeleteAction(cmd.Context(), p.ServerName, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed action %s from %s/%s\n", args[1], p.ServerName, args[0])
		return nil
	},
}

func init() {
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleRemoveCmd)

	f := scheduleAddCmd.Flags()
	f.String("cron", "0 0 3 * * *", "Cron expression, with an optional leading seconds field")
	f.String("share-user", "", "File share user")
	f.Bool("backup", false, "Start a server backup after each clean transfer")
	f.String("bwlimit", "", "Bandwidth limit passed to the mover")
	f.Int("transfers", 4, "Parallel file transfers")
	f.Bool("checksum", false, "Compare checksums instead of size and time")
	f.StringSlice("exclude", nil, "Exclude pattern, repeatable")
	_ = scheduleAddCmd.MarkFlagRequired("share-user")

	actionCmd.AddCommand(actionAddCmd)
	actionCmd.AddCommand(actionRemoveCmd)
	actionAddCmd.Flags().Bool("disabled", false, "Save the action without enabling it")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(actionCmd)
}
