package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"neptis/internal/client"
	"neptis/internal/models"
	"neptis/internal/secret"
	"neptis/internal/wake"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage server profiles",
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List server profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		profiles, err := a.repo.ListProfiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No servers configured.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tENDPOINT\tUSER\tENCRYPTED\tWAKE\tDEFAULT")
		for _, p := range profiles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ServerName, p.Endpoint, p.Username,
				yesNo(p.Secret != ""), yesNo(p.HasWake()), mark(p.IsDefault))
		}
		return w.Flush()
	},
}

var serverAddCmd = &cobra.Command{
	Use:   "add <name> <endpoint>",
	Short: "Add or update a server profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		secretStr, _ := flags.GetString("secret")
		generate, _ := flags.GetBool("generate-secret")
		username, _ := flags.GetString("username")
		askPassword, _ := flags.GetBool("ask-password")
		wakeEndpoint, _ := flags.GetString("wake-endpoint")
		wakeSecret, _ := flags.GetString("wake-secret")
		isDefault, _ := flags.GetBool("default")
		autoMount, _ := flags.GetBool("auto-mount")
		skipCheck, _ := flags.GetBool("skip-check")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if generate {
			seed, err := secret.GenerateSeed(32)
			if err != nil {
				return fmt.Errorf("generating secret: %w", err)
			}
			secretStr = seed.String()
			fmt.Printf("Generated secret (configure the same value on the server):\n%s\n", secretStr)
		} else if secretStr != "" {
			if _, err := secret.ParseSeed(secretStr); err != nil {
				return err
			}
		}

		p := &models.Profile{
			ServerName:   args[0],
			Endpoint:     args[1],
			Secret:       secretStr,
			Username:     username,
			WakeEndpoint: wakeEndpoint,
			WakeSecret:   wakeSecret,
			IsDefault:    isDefault,
			AutoMount:    autoMount,
		}
		if askPassword {
			if p.Password, err = promptPassword(fmt.Sprintf("Password for %s: ", username)); err != nil {
				return err
			}
		}
		if p.HasWake() {
			if _, err := wake.NewClient(p.WakeEndpoint, p.WakeSecret); err != nil {
				return err
			}
		}

		if !skipCheck {
			if err := checkServer(cmd.Context(), p); err != nil {
				return err
			}
		}

		if err := a.repo.SaveProfile(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Printf("Saved server %s\n", p.ServerName)
		return nil
	},
}

// checkServer makes sure the endpoint answers and, when the profile stores
// credentials, that they are accepted.
func checkServer(ctx context.Context, p *models.Profile) error {
	c, err := client.NewFromProfile(p)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	info, err := c.GetInfo(ctx)
	if err != nil {
		return fmt.Errorf("server %s did not answer (use --skip-check to save anyway): %w", p.ServerName, err)
	}
	fmt.Printf("Connected to %s (version %s)\n", p.Endpoint, info.Version)

	if p.HasCredentials() {
		if _, err := c.Login(ctx, p.Username, p.Password); err != nil {
			return fmt.Errorf("login as %s failed: %w", p.Username, err)
		}
	}
	return nil
}

var serverRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a server profile with its schedules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !yes && !confirm(fmt.Sprintf("Remove server %s and all of its schedules?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.repo.DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed server %s\n", args[0])
		return nil
	},
}

var serverDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Make a server the default profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.repo.GetProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		p.IsDefault = true
		if err := a.repo.SaveProfile(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Printf("Default server is now %s\n", p.ServerName)
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func init() {
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverAddCmd)
	serverCmd.AddCommand(serverRemoveCmd)
	serverCmd.AddCommand(serverDefaultCmd)

	f := serverAddCmd.Flags()
	f.String("secret", "", "Shared envelope secret \"<b64>;<b64>;<password>\"")
	f.Bool("generate-secret", false, "Generate a new envelope secret")
	f.StringP("username", "u", "", "Stored login name")
	f.Bool("ask-password", false, "Prompt for a password to store with the profile")
	f.String("wake-endpoint", "", "Wake-on-demand endpoint URL")
	f.String("wake-secret", "", "Wake seed \"<b64>;<b64>\"")
	f.Bool("default", false, "Make this the default server")
	f.Bool("auto-mount", false, "Mount this server when the client starts")
	f.Bool("skip-check", false, "Save without contacting the server")
	serverAddCmd.MarkFlagsMutuallyExclusive("secret", "generate-secret")

	serverRemoveCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(serverCmd)
}
