package main

import (
	"github.com/spf13/cobra"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
	usersUC "github.com/vastriantafyllou/goal-tracker/usecase/users"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "goalctl",
		Short:         "Track goals from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newGoalsCommand(a),
		newCategoriesCommand(a),
		newUsersCommand(a),
	)
	return root
}

func newLoginCommand(a *app) *cobra.Command {
	var credentials domain.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.login(cmd.Context(), credentials); err != nil {
				return err
			}
			return a.printSession(a.session.Session())
		},
	}
	cmd.Flags().StringVarP(&credentials.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&credentials.Password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.printLine("Logged out.")
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printSession(a.session.Session())
		},
	}
}

func newGoalsCommand(a *app) *cobra.Command {
	var search, status, category, due, sort string
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List your goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(""); err != nil {
				return err
			}
			q := query.Query{Search: search}.
				WithFilter(query.FilterStatus, status).
				WithFilter(query.FilterCategory, category).
				WithFilter(query.FilterDue, due).
				WithSort(sort)
			view, err := a.goals().View(cmd.Context(), q)
			if err != nil {
				return err
			}
			return a.printGoals(view)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&search, "search", "", "match goal title")
	flags.StringVar(&status, "status", query.All, "InProgress, Completed or Cancelled")
	flags.StringVar(&category, "category", query.All, "category id or name, or None")
	flags.StringVar(&due, "due", query.All, "Overdue, Today or ThisWeek")
	flags.StringVar(&sort, "sort", query.DefaultGoalSort, "field-dir, e.g. dueDate-asc or created-desc")

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Count goals per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(""); err != nil {
				return err
			}
			view, err := a.goals().View(cmd.Context(), query.Query{})
			if err != nil {
				return err
			}
			return a.printStats(view.Stats)
		},
	})
	return cmd
}

func newCategoriesCommand(a *app) *cobra.Command {
	var search, filter, sort string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List your categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(""); err != nil {
				return err
			}
			q := query.Query{Search: search}.
				WithFilter(query.FilterGoalCount, filter).
				WithSort(sort)
			view, err := a.categories().View(cmd.Context(), q)
			if err != nil {
				return err
			}
			return a.printCategories(view)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&search, "search", "", "match category name")
	flags.StringVar(&filter, "filter", query.All, "WithGoals or Empty")
	flags.StringVar(&sort, "sort", "", "name-asc, goalCount-desc, ...")
	return cmd
}

func newUsersCommand(a *app) *cobra.Command {
	var req usersUC.PageRequest
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List user accounts (Admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(domain.RoleAdmin); err != nil {
				return err
			}
			q := query.Query{}.WithFilter(query.FilterRole, role)
			view, err := a.users().Page(cmd.Context(), req, q)
			if err != nil {
				return err
			}
			return a.printUsers(view)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&req.PageNumber, "page", 1, "page number")
	flags.IntVar(&req.PageSize, "size", 10, "page size")
	flags.StringVar(&req.Username, "username", "", "server-side username filter")
	flags.StringVar(&role, "role", query.All, "User, Admin or SuperAdmin")
	return cmd
}
