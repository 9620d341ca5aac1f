package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopease/go_shop/internal/api"
	"github.com/shopease/go_shop/internal/cart"
	"github.com/shopease/go_shop/internal/domain"
)

var tabNames = [domain.FeedCount]string{"Recommended", "Related to You", "Top Rated", "Hybrid"}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL PASSWORD",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := args[0], args[1]
		if email == "" || password == "" {
			return errors.New("email and password are required")
		}
		user, err := shop.client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := shop.store.SetSession(*user); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (user %s)\n", email, user.UserID)
		if user.Admin {
			fmt.Println("Admin account: `shopease admin` shows the dashboard summary.")
		}
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup NAME MOBILE EMAIL PASSWORD CONFIRM",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, mobile, email, password, confirm := args[0], args[1], args[2], args[3], args[4]
		if password != confirm {
			return errors.New("passwords don't match")
		}
		if err := shop.client.Signup(cmd.Context(), name, mobile, email, password); err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		fmt.Println("Sign up successful! You can now log in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shop.store.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and modify the shopping cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shop.engine.Fetch(cmd.Context()); err != nil {
			return err
		}
		items := shop.engine.Items()
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%6d  x%-3d %-40s %-20s %.1f★ (%d reviews)\n",
				item.ProdID, item.Count, item.Name, item.Brand, item.Rating, item.ReviewCount)
		}
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add the closest catalog match for NAME to the cart",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		product, err := lookupProduct(cmd.Context(), name)
		if err != nil {
			return err
		}
		if err := shop.engine.Add(cmd.Context(), *product); err != nil {
			if errors.Is(err, cart.ErrAuthRequired) {
				return errors.New("please log in first")
			}
			return err
		}
		fmt.Printf("Added %q to the cart.\n", product.Name)
		return nil
	},
}

var cartIncCmd = &cobra.Command{
	Use:   "inc PRODID",
	Short: "Increase an item's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return mutateByID(cmd, args[0], doIncrease) },
}

var cartDecCmd = &cobra.Command{
	Use:   "dec PRODID",
	Short: "Decrease an item's quantity by one (removes it at zero)",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return mutateByID(cmd, args[0], doDecrement) },
}

var cartRmCmd = &cobra.Command{
	Use:   "rm PRODID",
	Short: "Remove an item regardless of quantity",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return mutateByID(cmd, args[0], doRemove) },
}

type cartMutation int

const (
	doIncrease cartMutation = iota
	doDecrement
	doRemove
)

func mutateByID(cmd *cobra.Command, arg string, op cartMutation) error {
	prodID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", arg)
	}
	if err := shop.engine.Fetch(cmd.Context()); err != nil {
		return err
	}
	switch op {
	case doIncrease:
		err = shop.engine.Increase(cmd.Context(), prodID)
	case doDecrement:
		err = shop.engine.Remove(cmd.Context(), prodID, cart.ModeDecrement)
	case doRemove:
		err = shop.engine.Remove(cmd.Context(), prodID, cart.ModeRemove)
	}
	if errors.Is(err, cart.ErrAuthRequired) {
		return errors.New("please log in first")
	}
	return err
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the tabbed recommendation feeds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := cmd.Flags().GetInt("tab")
		if err != nil {
			return err
		}
		shop.aggregator.Refresh(cmd.Context())
		shop.aggregator.SelectTab(domain.Feed(tab))

		set := shop.aggregator.Current()
		fmt.Printf("== %s ==\n", tabNames[set.Feed])
		if msg := shop.aggregator.Err(set.Feed); msg != "" {
			fmt.Println(msg)
			return nil
		}
		printProducts(set.Products)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search products similar to QUERY",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		results, err := shop.client.ContentRecommendations(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No recommendations found.")
			return nil
		}
		printProducts(results)

		related := make([]string, 0, 3)
		for _, p := range results {
			if len(related) == 3 {
				break
			}
			related = append(related, p.Name)
		}
		if err := shop.store.SetLastSearch(domain.LastSearch{
			Name:      query,
			Timestamp: time.Now(),
			Related:   related,
		}); err != nil {
			shop.logger.Warn("last search not persisted", zap.Error(err))
		}
		return nil
	},
}

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List brands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		brands, err := shop.client.Brands(cmd.Context())
		if err != nil {
			return err
		}
		for _, brand := range brands {
			fmt.Println(brand)
		}
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products BRAND",
	Short: "List a brand's products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := shop.client.ProductsByBrand(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products found for this brand.")
			return nil
		}
		printProducts(products)
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review NAME --comment TEXT",
	Short: "Submit a review for the closest catalog match of NAME",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, err := cmd.Flags().GetString("comment")
		if err != nil {
			return err
		}
		user, loggedIn := shop.store.Current()
		// Reject malformed input before any dispatch.
		if !loggedIn || strings.TrimSpace(comment) == "" {
			return errors.New("make sure you are logged in and the comment is not empty")
		}
		product, err := lookupProduct(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		err = shop.client.AddComment(cmd.Context(), api.Review{
			UserID:      user.UserID,
			ProductID:   product.ProdID,
			Username:    user.Name,
			Comment:     comment,
			ProductName: product.Name,
			Brand:       product.Brand,
			Rating:      product.Rating,
			ReviewCount: product.ReviewCount,
			Description: product.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to submit review: %w", err)
		}
		fmt.Println("Review submitted successfully!")
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Show the admin dashboard summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, loggedIn := shop.store.Current()
		if !loggedIn || !user.Admin {
			return errors.New("admin account required")
		}
		summary, err := shop.client.AdminDashboard(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("Top rated products:")
		printProducts(summary.TopProducts)
		fmt.Println("\nTop brands by average rating:")
		for _, row := range summary.TopBrands {
			fmt.Printf("  %-20s %.2f★\n", row.Brand, row.AverageRating)
		}
		return nil
	},
}

func lookupProduct(ctx context.Context, name string) (*domain.Product, error) {
	results, err := shop.client.ContentRecommendations(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no catalog match for %q", name)
	}
	return &results[0], nil
}

func printProducts(products []domain.Product) {
	for _, p := range products {
		fmt.Printf("%6d  %-40s %-20s %.1f★ (%d reviews)\n      %s\n",
			p.ProdID, p.Name, p.Brand, p.Rating, p.ReviewCount, p.ImageURLOrPlaceholder())
	}
}

func init() {
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartIncCmd, cartDecCmd, cartRmCmd)
	homeCmd.Flags().Int("tab", 0, "tab index: 0 recommended, 1 related, 2 top rated, 3 hybrid")
	reviewCmd.Flags().String("comment", "", "review text")
}
