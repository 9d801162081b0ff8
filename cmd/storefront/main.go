package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"storefront-orders/internal/checkout"
	"storefront-orders/internal/clientconfig"
	"storefront-orders/internal/domain"
	"storefront-orders/internal/remotecfg"
	draftrepo "storefront-orders/internal/repository/draft"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront order submission client",
	}
	cmd.PersistentFlags().StringVar(&profilePath, "profile", "storefront.yaml", "client profile file")

	cmd.AddCommand(newCartCommand(&profilePath))
	cmd.AddCommand(newSubmitCommand(&profilePath))
	return cmd
}

func openDrafts(profilePath string, logger *log.Logger) (clientconfig.Profile, draftrepo.Repository, error) {
	profile, err := clientconfig.Load(profilePath)
	if err != nil {
		return profile, nil, err
	}
	repo, err := draftrepo.OpenSQLite(profile.DraftDB, logger)
	if err != nil {
		return profile, nil, err
	}
	return profile, repo, nil
}

func newCartCommand(profilePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the in-progress cart",
	}

	var size, color string
	var qty int
	var price float64
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "[storefront] ", log.LstdFlags)
			_, repo, err := openDrafts(*profilePath, logger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			items, err := repo.LoadCart(ctx)
			if err != nil {
				return err
			}
			items = append(items, domain.CartItem{
				Name:     args[0],
				Size:     size,
				Color:    color,
				Quantity: qty,
				Price:    price,
			})
			if err := repo.SaveCart(ctx, items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cart: %d item(s)\n", len(items))
			return nil
		},
	}
	add.Flags().StringVar(&size, "size", "", "item size")
	add.Flags().StringVar(&color, "color", "", "item color")
	add.Flags().IntVar(&qty, "qty", 1, "quantity")
	add.Flags().Float64Var(&price, "price", 0, "unit price")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "[storefront] ", log.LstdFlags)
			_, repo, err := openDrafts(*profilePath, logger)
			if err != nil {
				return err
			}
			items, err := repo.LoadCart(cmd.Context())
			if err != nil {
				return err
			}
			var total float64
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s size=%s color=%s x%d @ %s\n",
					item.Name, item.Size, item.Color, item.Quantity,
					strconv.FormatFloat(item.Price, 'f', 2, 64))
				total += item.Price * float64(item.Quantity)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total: %s\n", strconv.FormatFloat(total, 'f', 2, 64))
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "[storefront] ", log.LstdFlags)
			_, repo, err := openDrafts(*profilePath, logger)
			if err != nil {
				return err
			}
			return repo.ClearCart(cmd.Context())
		},
	}

	cmd.AddCommand(add, show, clear)
	return cmd
}

func newSubmitCommand(profilePath *string) *cobra.Command {
	var in checkout.FormInput

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the current cart as an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "[storefront] ", log.LstdFlags)
			profile, repo, err := openDrafts(*profilePath, logger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var source remotecfg.Provider
			if profile.ConfigURL != "" {
				source = remotecfg.NewHTTP(profile.ConfigURL, nil, logger)
			}

			coordinator := &checkout.Coordinator{
				Resolver: &checkout.Resolver{
					Source:     source,
					DefaultURL: profile.DefaultEndpoint,
					Secure:     profile.Secure,
					Logger:     logger,
				},
				Submitter: &checkout.Submitter{
					Client: &http.Client{Timeout: 30 * time.Second},
					Logger: logger,
				},
				Cart:      &storeCart{ctx: ctx, repo: repo, logger: logger},
				Drafts:    repo,
				Presenter: consolePresenter{out: cmd.OutOrStdout()},
				Logger:    logger,
			}
			coordinator.Submit(ctx, in)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.City, "city", "", "city")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "delivery notes")
	return cmd
}

// storeCart adapts the draft repository's cart slot to the coordinator's
// cart collaborator.
type storeCart struct {
	ctx    context.Context
	repo   draftrepo.Repository
	logger *log.Logger
}

func (c *storeCart) Items() []domain.CartItem {
	items, err := c.repo.LoadCart(c.ctx)
	if err != nil {
		c.logger.Printf("cart: load error=%v", err)
		return nil
	}
	return items
}

func (c *storeCart) Total() float64 {
	var total float64
	for _, item := range c.Items() {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *storeCart) Clear() {
	if err := c.repo.ClearCart(c.ctx); err != nil {
		c.logger.Printf("cart: clear error=%v", err)
	}
}

type consolePresenter struct {
	out io.Writer
}

func (p consolePresenter) OrderAccepted(message string) {
	fmt.Fprintln(p.out, message)
}

func (p consolePresenter) OrderFailed(message string) {
	fmt.Fprintln(p.out, message)
}
