// Command vmadmin-cli runs administrative tasks against the database.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/vmadmin/infra/initializer"
	"github.com/amirasaad/vmadmin/infra/migrations"
	"github.com/amirasaad/vmadmin/pkg/app"
	"github.com/amirasaad/vmadmin/pkg/config"
	usersvc "github.com/amirasaad/vmadmin/pkg/service/user"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
)

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

var envFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

// newApp loads config and connects. Auto-migration is left to the migrate
// commands.
func newApp() (*app.App, *gorm.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.DB.AutoMigrate = false
	deps, db, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing: %w", err)
	}
	return app.New(deps, cfg), db, nil
}

var rootCmd = &cobra.Command{
	Use:           "vmadmin-cli",
	Short:         "VM admin maintenance tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := newApp()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close() //nolint:errcheck
		if err := migrations.MigrateUp(sqlDB); err != nil {
			return err
		}
		state, err := migrations.Status(sqlDB)
		if err != nil {
			return err
		}
		return printState(cmd.OutOrStdout(), state)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := newApp()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close() //nolint:errcheck
		if err := migrations.MigrateDown(sqlDB); err != nil {
			return err
		}
		state, err := migrations.Status(sqlDB)
		if err != nil {
			return err
		}
		return printState(cmd.OutOrStdout(), state)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied and latest schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := newApp()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close() //nolint:errcheck
		state, err := migrations.Status(sqlDB)
		if err != nil {
			return err
		}
		return printState(cmd.OutOrStdout(), state)
	},
}

func printState(w io.Writer, s migrations.State) error {
	status := ok("up to date")
	switch {
	case s.Dirty:
		status = color.RedString("dirty")
	case s.Pending() > 0:
		status = warn(fmt.Sprintf("%d pending", s.Latest-s.Version))
	}
	_, err := fmt.Fprintf(w, "schema version %s of %d (%s)\n", bold(s.Version), s.Latest, status)
	return err
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage roles",
}

var rolesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default role given by BILLING_DEFAULT_ROLE",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := newApp()
		if err != nil {
			return err
		}
		return seedRole(cmd.Context(), cmd.OutOrStdout(), a.UserService, a.Config.Billing.DefaultRole)
	},
}

func seedRole(ctx context.Context, w io.Writer, svc *usersvc.Service, name string) error {
	role, created, err := svc.EnsureDefaultRole(ctx, name)
	if err != nil {
		return err
	}
	if created {
		_, err = fmt.Fprintf(w, "%s default role %s (%s)\n", ok("created"), bold(role.Name), role.ID)
		return err
	}
	_, err = fmt.Fprintf(w, "%s default role is already %s\n", warn("unchanged"), bold(role.Name))
	return err
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Sign up a user with the default role",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			p, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			password = p
		}
		a, _, err := newApp()
		if err != nil {
			return err
		}
		return createUser(cmd.Context(), cmd.OutOrStdout(), a.UserService, usersvc.SignupInput{
			Username: username,
			Email:    email,
			Password: password,
		})
	},
}

func createUser(ctx context.Context, w io.Writer, svc *usersvc.Service, in usersvc.SignupInput) error {
	u, err := svc.Signup(ctx, in)
	if err != nil {
		return err
	}
	role := u.RoleName()
	if role == "" {
		role = warn("none")
	}
	_, err = fmt.Fprintf(w, "%s user %s (%s) role=%s\n", ok("created"), bold(u.Username), u.ID, role)
	return err
}

// promptPassword reads a password without echo from a terminal, or a
// single line from any other reader.
func promptPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, isFile := in.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ") //nolint:errcheck
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt) //nolint:errcheck
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file to load before the environment")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rolesCmd.AddCommand(rolesSeedCmd)

	usersCreateCmd.Flags().String("username", "", "username")
	usersCreateCmd.Flags().String("email", "", "email address")
	usersCreateCmd.Flags().String("password", "", "password (prompted when empty)")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("email")
	usersCmd.AddCommand(usersCreateCmd)

	rootCmd.AddCommand(migrateCmd, rolesCmd, usersCmd)
}
