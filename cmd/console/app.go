package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category"
	catRepoPkg "github.com/fekuna/omnipos-admin-console/internal/category/repository"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/product"
	prodRepoPkg "github.com/fekuna/omnipos-admin-console/internal/product/repository"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
	"github.com/fekuna/omnipos-admin-console/internal/upload"
	"github.com/fekuna/omnipos-admin-console/internal/user"
	userRepoPkg "github.com/fekuna/omnipos-admin-console/internal/user/repository"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	out    io.Writer
	errOut io.Writer
	client *transport.Client

	products   product.Repository
	categories category.Repository
	admins     user.AdminRepository
	consumers  user.ConsumerRepository
}

func newApp(cfg *config.Config, log logger.ZapLogger, out, errOut io.Writer) *app {
	client := transport.NewClient(&cfg.API, log)
	return &app{
		cfg:        cfg,
		logger:     log,
		out:        out,
		errOut:     errOut,
		client:     client,
		products:   prodRepoPkg.NewHTTPRepository(client),
		categories: catRepoPkg.NewHTTPRepository(client),
		admins:     userRepoPkg.NewAdminHTTPRepository(client),
		consumers:  userRepoPkg.NewConsumerHTTPRepository(client),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "console",
		Short:         "Back-office console for products, categories and users",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.AddCommand(
		a.productsCmd(),
		a.categoriesCmd(),
		a.adminsCmd(),
		a.consumersCmd(),
	)
	return root
}

// newPipeline builds an image pipeline that reports progress on stderr.
func (a *app) newPipeline() *upload.Pipeline {
	p := upload.NewPipeline(&a.cfg.Upload, upload.NewHTTPUploader(a.client, a.cfg.Upload.Field), a.logger)
	p.OnProgress(func(progress int) {
		if progress == 0 {
			return
		}
		fmt.Fprintf(a.errOut, "\ruploading image... %3d%%", progress)
		if progress == 100 {
			fmt.Fprintln(a.errOut)
		}
	})
	return p
}

func readImage(path string) (upload.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to read image: %w", err)
	}
	return upload.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Data:        data,
	}, nil
}

func (a *app) printError(err error) {
	fmt.Fprintf(a.errOut, "Error: %s\n", apperr.PublicMessage(err))
	ae, ok := apperr.As(err)
	if !ok {
		fmt.Fprintf(a.errOut, "  %v\n", err)
		return
	}
	fields := make([]string, 0, len(ae.Fields))
	for f := range ae.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.errOut, "  %s: %s\n", f, ae.Fields[f])
	}
	if ae.Err != nil {
		a.logger.Debug(ae.Error())
	}
}
