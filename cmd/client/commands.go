package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/models"
)

func newRootCmd(rt *runtime, build models.BuildInfo) *cobra.Command {
	overrides := &config.StructuredConfig{}

	root := &cobra.Command{
		Use:           "zwm",
		Short:         "Zero Waste Market command-line client",
		Long:          "Browse, list and manage items on a Zero Waste Market server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return rt.init(cmd.Context(), overrides, cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&overrides.Adapter.HTTPAddress, "server", "", "API server address, e.g. http://localhost:8080")
	flags.DurationVar(&overrides.Adapter.RequestTimeout, "timeout", 0, "timeout of a single request")
	flags.StringVar(&overrides.Client.DB.DSN, "session-db", "", "SQLite file that keeps the login session")
	flags.StringVar(&overrides.Client.LogFile, "log-file", "", "file the client appends its logs to")
	flags.StringVarP(&overrides.JSONFilePath, "config", "c", "", "JSON configuration file")

	root.AddCommand(
		registerCmd(rt),
		loginCmd(rt),
		logoutCmd(rt),
		whoamiCmd(rt),
		profileCmd(rt),
		itemsCmd(rt),
		versionCmd(rt, build),
	)

	return root
}

func registerCmd(rt *runtime) *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := passwordFrom(cmd, req.Password)
			if err != nil {
				return err
			}
			req.Password = password
			return rt.app.Register(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "password; prompted for when omitted")
	mustMarkRequired(cmd, "name", "email")

	return cmd
}

func loginCmd(rt *runtime) *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := passwordFrom(cmd, req.Password)
			if err != nil {
				return err
			}
			req.Password = password
			return rt.app.Login(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "password; prompted for when omitted")
	mustMarkRequired(cmd, "email")

	return cmd
}

func logoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Logout(cmd.Context())
		},
	}
}

func whoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Whoami(cmd.Context())
		},
	}
}

func profileCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var (
		req     models.ProfileUpdateRequest
		address models.Address
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; omitted fields are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if anyChanged(cmd, "street", "city", "state", "zip", "country") {
				req.Address = &address
			}
			return rt.app.UpdateProfile(cmd.Context(), req)
		},
	}

	f := update.Flags()
	f.StringVar(&req.Name, "name", "", "display name")
	f.StringVar(&req.Phone, "phone", "", "phone number")
	f.StringVar(&req.Bio, "bio", "", "short bio")
	f.StringVar(&req.Avatar, "avatar", "", "avatar image URL")
	f.StringVar(&address.Street, "street", "", "street; any address flag replaces the whole address")
	f.StringVar(&address.City, "city", "", "city")
	f.StringVar(&address.State, "state", "", "state")
	f.StringVar(&address.ZipCode, "zip", "", "zip code")
	f.StringVar(&address.Country, "country", "", "country")

	cmd.AddCommand(update)
	return cmd
}

func itemsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse and manage items",
	}

	cmd.AddCommand(
		listItemsCmd(rt),
		myItemsCmd(rt),
		showItemCmd(rt),
		createItemCmd(rt),
		updateItemCmd(rt),
		deleteItemCmd(rt),
	)
	return cmd
}

func listItemsCmd(rt *runtime) *cobra.Command {
	var filter models.ItemFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items on the market",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.ListItems(cmd.Context(), filter)
		},
	}
	bindFilterFlags(cmd, &filter)

	return cmd
}

func myItemsCmd(rt *runtime) *cobra.Command {
	var filter models.ItemFilter

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.MyItems(cmd.Context(), filter)
		},
	}
	bindFilterFlags(cmd, &filter)

	return cmd
}

func showItemCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.ShowItem(cmd.Context(), args[0])
		},
	}
}

func createItemCmd(rt *runtime) *cobra.Command {
	var req models.ItemRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "List a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.CreateItem(cmd.Context(), req)
		},
	}
	bindItemFlags(cmd, &req)
	mustMarkRequired(cmd, "title")

	return cmd
}

func updateItemCmd(rt *runtime) *cobra.Command {
	var (
		req    models.ItemRequest
		status string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update one of your items; omitted fields are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Status = models.ItemStatus(status)
			return rt.app.UpdateItem(cmd.Context(), args[0], req)
		},
	}
	bindItemFlags(cmd, &req)
	cmd.Flags().StringVar(&status, "status", "", "available, pending, sold or withdrawn")

	return cmd
}

func deleteItemCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.DeleteItem(cmd.Context(), args[0])
		},
	}
}

func versionCmd(rt *runtime, build models.BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Version(cmd.Context(), build)
		},
	}
}

func bindFilterFlags(cmd *cobra.Command, filter *models.ItemFilter) {
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar((*string)(&filter.Status), "status", "", "only this status")
	cmd.Flags().StringVar(&filter.Search, "search", "", "text to find in title or description")
}

func bindItemFlags(cmd *cobra.Command, req *models.ItemRequest) {
	cmd.Flags().StringVar(&req.Title, "title", "", "title")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().StringVar(&req.Category, "category", "", "category")
	cmd.Flags().StringVar(&req.Location, "location", "", "pickup location")
	cmd.Flags().StringVar(&req.ImageURL, "image-url", "", "image URL")
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// passwordFrom returns given, or reads a password from stdin. On a
// terminal the input is not echoed.
func passwordFrom(cmd *cobra.Command, given string) (string, error) {
	if given != "" {
		return given, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
