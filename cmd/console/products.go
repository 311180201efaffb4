package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-admin-console/internal/form"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	prodUCPkg "github.com/fekuna/omnipos-admin-console/internal/product/usecase"
	"github.com/spf13/cobra"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List, create and update products",
	}
	cmd.AddCommand(a.productsListCmd(), a.productsCreateCmd(), a.productsUpdateCmd())
	return cmd
}

func (a *app) productsListCmd() *cobra.Command {
	var (
		search     string
		categoryID int64
		stock      string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products; a search term takes precedence over filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := prodUCPkg.NewProductUseCase(a.products, a.logger)
			defer uc.Close()

			products, err := uc.ListProducts(cmd.Context(), &dto.ProductQuery{
				SearchTerm:  search,
				CategoryID:  categoryID,
				StockStatus: model.StockStatus(stock),
			})
			if err != nil {
				return err
			}
			a.renderProducts(products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "product name to search for")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "filter by category id")
	cmd.Flags().StringVar(&stock, "stock", "", "filter by stock status (available|unavailable)")
	return cmd
}

type productFlags struct {
	name        string
	description string
	price       string
	category    string
	stock       string
	image       string
	clearImage  bool
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.price, "price", "", "price, e.g. 19.90")
	cmd.Flags().StringVar(&f.category, "category", "", "category id or name")
	cmd.Flags().StringVar(&f.stock, "stock", "", "stock status (available|unavailable)")
	cmd.Flags().StringVar(&f.image, "image", "", "path of an image to upload")
}

func (a *app) productsCreateCmd() *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.submitProduct(cmd, 0, &flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *app) productsUpdateCmd() *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.submitProduct(cmd, id, &flags)
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&flags.clearImage, "clear-image", false, "remove the current image")
	return cmd
}

// submitProduct stages the changed flags on a product form and submits it.
// id 0 creates.
func (a *app) submitProduct(cmd *cobra.Command, id int64, flags *productFlags) error {
	ctx := cmd.Context()
	schema := form.NewProductSchema(a.products, a.categories)
	done := make(chan struct{})
	f := form.NewProductForm(schema, form.Options{
		Pipeline:     a.newPipeline(),
		SuccessDelay: a.cfg.Form.ProductSuccessDelay,
		OnDone:       func() { close(done) },
	}, a.logger)
	defer f.Discard()

	if id == 0 {
		f.EnterCreate()
	} else if err := f.EnterEdit(ctx, id); err != nil {
		return err
	}

	set := map[string]string{}
	changed := cmd.Flags().Changed
	if changed("name") {
		set[form.FieldProductName] = flags.name
	}
	if changed("description") {
		set[form.FieldDescription] = flags.description
	}
	if changed("price") {
		set[form.FieldPrice] = flags.price
	}
	if changed("stock") {
		set[form.FieldStockStatus] = flags.stock
	}
	if changed("category") {
		categoryID, err := a.resolveCategory(ctx, schema, flags.category)
		if err != nil {
			return err
		}
		set[form.FieldCategoryID] = categoryID
	}
	for field, value := range set {
		if err := f.Set(field, value); err != nil {
			return err
		}
	}

	if flags.clearImage {
		if err := f.ClearImage(); err != nil {
			return err
		}
	}
	if flags.image != "" {
		file, err := readImage(flags.image)
		if err != nil {
			return err
		}
		if err := f.SelectImage(file); err != nil {
			return err
		}
	}

	if err := f.Submit(ctx); err != nil {
		return err
	}
	d := f.Draft()
	if id == 0 {
		fmt.Fprintf(a.out, "Product #%d created\n", d.CreatedID)
	} else {
		fmt.Fprintf(a.out, "Product #%d updated\n", id)
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil
	}
	products, err := a.products.List(ctx)
	if err != nil {
		return err
	}
	a.renderProducts(products)
	return nil
}

// resolveCategory accepts a category id or a case-insensitive category name.
func (a *app) resolveCategory(ctx context.Context, schema *form.ProductSchema, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return value, nil
	}
	options, err := schema.LoadCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range options {
		if strings.EqualFold(c.CategoryName, value) {
			return strconv.FormatInt(c.ID, 10), nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
