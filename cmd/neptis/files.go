package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"neptis/internal/browser"
	"neptis/internal/fusefs"
	"neptis/internal/vfs"
)

var selectModes = map[string]browser.Mode{
	"":                browser.Explore,
	"any-file":        browser.AnyFile,
	"any-folder":      browser.AnyFolder,
	"writable-file":   browser.WritableFile,
	"writable-folder": browser.WritableFolder,
}

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Explore the server filesystem from a prompt",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selectFlag, _ := cmd.Flags().GetString("select")
		mode, ok := selectModes[selectFlag]
		if !ok {
			return fmt.Errorf("unknown selection mode %q", selectFlag)
		}
		start := "/"
		if len(args) == 1 {
			start = args[0]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, _, err := a.login(cmd.Context())
		if err != nil {
			return err
		}
		fsys := vfs.New(c, vfs.OptionsFromConfig(a.cfg.GetVFS()))
		b := browser.New(fsys, afero.NewOsFs())

		selected, err := b.Run(cmd.Context(), start, mode, os.Stdin, os.Stdout)
		if errors.Is(err, browser.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if selected != "" {
			fmt.Println(selected)
		}
		return nil
	},
}

var mountCmd = &cobra.Command{
	Use:   "mount [dir]",
	Short: "Mount the server filesystem until interrupted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !fusefs.Supported() {
			return fmt.Errorf("mounting is not supported on this platform")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, p, err := a.login(cmd.Context())
		if err != nil {
			return err
		}

		dir := filepath.Join(a.cfg.GetPaths().DefaultMount, p.ServerName)
		if len(args) == 1 {
			dir = args[0]
		}

		fsys := vfs.New(c, vfs.OptionsFromConfig(a.cfg.GetVFS()))
		m, err := fusefs.Start(fsys, dir)
		if err != nil {
			return err
		}
		fmt.Printf("Mounted %s at %s. Press Ctrl-C to unmount.\n", p.ServerName, m.Dir())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
		case <-m.Done():
			fmt.Println("Filesystem was unmounted externally.")
		}
		return m.Unmount()
	},
}

func init() {
	browseCmd.Flags().String("select", "", "Pick an entry: any-file, any-folder, writable-file or writable-folder")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(mountCmd)
}
