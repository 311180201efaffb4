package main

import (
	"fmt"

	catUCPkg "github.com/fekuna/omnipos-admin-console/internal/category/usecase"
	"github.com/fekuna/omnipos-admin-console/internal/form"
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List, create and update categories",
	}
	cmd.AddCommand(a.categoriesListCmd(), a.categoriesSaveCmd(false), a.categoriesSaveCmd(true), a.categoryProductsCmd())
	return cmd
}

func (a *app) categoriesListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := catUCPkg.NewCategoryUseCase(a.categories, a.logger)
			defer uc.Close()

			categories, err := uc.ListCategories(cmd.Context(), search)
			if err != nil {
				return err
			}
			a.renderCategories(categories)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "category name to search for")
	return cmd
}

func (a *app) categoriesSaveCmd(update bool) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use = "update <id>"
		cmd.Short = "Update a category"
		cmd.Args = cobra.ExactArgs(1)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := form.NewCategoryForm(form.NewCategorySchema(a.categories), form.Options{}, a.logger)
		defer f.Discard()

		var id int64
		if update {
			var err error
			if id, err = parseID(args[0]); err != nil {
				return err
			}
			if err := f.EnterEdit(ctx, id); err != nil {
				return err
			}
		} else {
			f.EnterCreate()
		}

		if cmd.Flags().Changed("name") {
			if err := f.Set(form.FieldCategoryName, name); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("description") {
			if err := f.Set(form.FieldDescription, description); err != nil {
				return err
			}
		}
		if err := f.Submit(ctx); err != nil {
			return err
		}
		if update {
			fmt.Fprintf(a.out, "Category #%d updated\n", id)
		} else {
			fmt.Fprintf(a.out, "Category #%d created\n", f.Draft().CreatedID)
		}
		return nil
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}

func (a *app) categoryProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products <id>",
		Short: "Show a category and its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			uc := catUCPkg.NewCategoryUseCase(a.categories, a.logger)
			defer uc.Close()

			out, err := uc.ProductsOf(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (#%d)\n", out.Category.CategoryName, out.Category.ID)
			a.renderProducts(out.Products)
			return nil
		},
	}
}
