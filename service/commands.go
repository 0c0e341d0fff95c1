package service

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"yatube/app/cache"
	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/services"
)

// Commands returns every yatube subcommand.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		ServeCmd(),
		MigrateCmd(),
		UserCmd(),
		GroupCmd(),
		CacheCmd(),
		VersionCmd(),
	}
}

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, cfg)
		},
	}
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer repositories.Close(db)

			printf(cmd, "Schema is up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				return errors.New("--password is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer repositories.Close(db)

			accounts := services.NewAccountService(repositories.NewGormUserRepository(db), nil)
			user, err := accounts.Signup(cmd.Context(), services.Credentials{Username: args[0], Password: password})
			if err != nil {
				return err
			}
			printf(cmd, "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	create.Flags().String("password", "", "password for the new user")

	cmd.AddCommand(create)
	return cmd
}

func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}

	create := &cobra.Command{
		Use:   "create <slug> <title>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")

			groups, closeDB, err := groupService(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			group := &models.Group{Slug: args[0], Title: args[1], Description: description}
			if err := groups.Create(cmd.Context(), group); err != nil {
				return err
			}
			printf(cmd, "Created group %s (id %d)\n", group.Slug, group.ID)
			return nil
		},
	}
	create.Flags().String("description", "", "what the group is about")
	_ = create.MarkFlagRequired("description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, closeDB, err := groupService(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			all, err := groups.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				printf(cmd, "No groups.\n")
				return nil
			}
			for _, g := range all {
				printf(cmd, "%-15s %s\n", g.Slug, g.Title)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(cmd, fmt.Sprintf("Delete group %s? Its posts will lose their group. [y/N] ", args[0])) {
				printf(cmd, "Operation cancelled\n")
				return nil
			}

			groups, closeDB, err := groupService(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := groups.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(cmd, "Deleted group %s\n", args[0])
			return nil
		},
	}
	del.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(create, list, del)
	return cmd
}

func groupService(cmd *cobra.Command) (*services.GroupService, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return services.NewGroupService(repositories.NewGormGroupRepository(db)), func() { _ = repositories.Close(db) }, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	printf(cmd, "%s", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page cache",
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page (on-disk cache only; the server must be stopped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Cache.Path == "" {
				printf(cmd, "Page cache is in memory; nothing to clear\n")
				return nil
			}

			pages, err := cache.Open(cache.Config{Path: cfg.Cache.Path, TTL: cfg.Cache.TTL})
			if err != nil {
				return err
			}
			defer pages.Close()

			if err := pages.Clear(); err != nil {
				return err
			}
			printf(cmd, "Page cache cleared\n")
			return nil
		},
	}

	cmd.AddCommand(clearCmd)
	return cmd
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printf(cmd, "yatube version %s\n", Version)
		},
	}
}

