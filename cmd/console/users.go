package main

import (
	"fmt"

	"github.com/fekuna/omnipos-admin-console/internal/form"
	userUCPkg "github.com/fekuna/omnipos-admin-console/internal/user/usecase"
	"github.com/spf13/cobra"
)

func (a *app) adminsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "admins",
		Aliases: []string{"admin"},
		Short:   "List, add and remove admin users",
	}
	cmd.AddCommand(a.adminsListCmd(), a.adminsAddCmd(), a.adminsRemoveCmd())
	return cmd
}

func (a *app) adminsListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List admin users, optionally narrowed by name or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := userUCPkg.NewAdminUseCase(a.admins, a.logger)
			defer uc.Close()

			if _, err := uc.Load(cmd.Context()); err != nil {
				return err
			}
			a.renderAdmins(uc.Visible(search))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "name or email to match")
	return cmd
}

func (a *app) adminsAddCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an active admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			uc := userUCPkg.NewAdminUseCase(a.admins, a.logger)
			defer uc.Close()
			if _, err := uc.Load(ctx); err != nil {
				return err
			}

			f := form.NewAdminForm(form.NewAdminSchema(uc), form.Options{SuccessDelay: a.cfg.Form.AdminSuccessDelay}, a.logger)
			defer f.Discard()
			f.EnterCreate()
			for field, value := range map[string]string{
				form.FieldUserName: name,
				form.FieldEmail:    email,
				form.FieldPassword: password,
			} {
				if err := f.Set(field, value); err != nil {
					return err
				}
			}
			if err := f.Submit(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Admin user #%d added\n", f.Draft().CreatedID)
			a.renderAdmins(uc.Visible(""))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}

func (a *app) adminsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an admin user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			uc := userUCPkg.NewAdminUseCase(a.admins, a.logger)
			defer uc.Close()
			if _, err := uc.Load(ctx); err != nil {
				return err
			}

			if err := uc.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Admin user #%d removed\n", id)
			a.renderAdmins(uc.Visible(""))
			return nil
		},
	}
}

func (a *app) consumersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "consumers",
		Aliases: []string{"consumer"},
		Short:   "List consumer users",
	}
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List consumers, optionally narrowed by name or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := userUCPkg.NewConsumerUseCase(a.consumers, a.logger)
			defer uc.Close()

			if _, err := uc.Load(cmd.Context()); err != nil {
				return err
			}
			a.renderConsumers(uc.Visible(search))
			return nil
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "name or email to match")
	cmd.AddCommand(list)
	return cmd
}
