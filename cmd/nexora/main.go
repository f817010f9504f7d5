// Command nexora is a CLI client for the Nexora storefront API: catalog
// browsing, device-scoped cart management and WhatsApp checkout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Uried/Nexora/internal/checkout"
	"github.com/Uried/Nexora/internal/client"
	"github.com/Uried/Nexora/internal/identity"
	"github.com/Uried/Nexora/internal/viewmodel"
)

// shippingFee is the flat delivery fee applied to non-empty carts.
const shippingFee = 1000

// whatsAppNumber is the business number receiving order messages
// (country code plus number, no leading +).
const whatsAppNumber = "237676663623"

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `nexora CLI
Usage:
  nexora [-api URL] [-timeout dur] [-config-dir dir] [-mobile] <cmd> [args]

Commands:
  version
  whoami                                  (print device identity)
  browse     [-page N] [-limit N] [-category id]
  product    -id <id>
  categories
  cart                                    (show cart with totals)
  add        -id <productId> [-qty N] [-price P]
  qty        -item <itemId> -n <N>        (N=0 removes the line)
  rm         -item <itemId>
  clear
  checkout   -phone <tel> -address <addr> [-notes text]
`)
	os.Exit(2)
}

// main dispatches subcommands against the remote store API.
func main() {
	apiBase := flag.String("api", envOr("NEXORA_API_BASE_URL", "http://localhost:8000/api"), "store API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	cfgDir := flag.String("config-dir", "", "config dir (default: $XDG_CONFIG_HOME/nexora)")
	mobile := flag.Bool("mobile", false, "use mobile navigation for the WhatsApp handoff")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	provider := identity.New(identity.NewFileStorage(*cfgDir), nil)
	api := client.New(client.Config{BaseURL: *apiBase, Identity: provider})

	switch cmd {

	case "version":
		fmt.Printf("nexora %s (%s)\n", version, buildDate)

	case "whoami":
		fmt.Println(provider.GetOrCreateDeviceID())

	case "browse":
		fs := flag.NewFlagSet("browse", flag.ExitOnError)
		page := fs.Int("page", 0, "page number")
		limit := fs.Int("limit", 0, "page size")
		category := fs.String("category", "", "category id")
		_ = fs.Parse(flag.Args()[1:])

		var err error
		var products any
		if *category != "" {
			products, err = api.ListProductsByCategory(ctx, *category)
		} else {
			products, err = api.ListProducts(ctx, *page, *limit)
		}
		if err != nil {
			fail(err)
		}
		printJSON(products)

	case "product":
		fs := flag.NewFlagSet("product", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		p, err := api.GetProduct(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(p)

	case "categories":
		cats, err := api.ListCategories(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(cats)

	case "cart":
		snap := api.FetchCart(ctx)
		if snap == nil {
			fail(fmt.Errorf("impossible de charger le panier"))
		}
		view := viewmodel.Build(snap, shippingFee)
		for _, line := range view.Lines {
			if line.Unavailable {
				fmt.Printf("  %s (article %s)\n", line.Name, line.ItemID)
				continue
			}
			fmt.Printf("  %dx %-24s %-20s %s\n",
				line.Quantity, line.Name, line.Brand, viewmodel.FormatPrice(line.LineTotal))
		}
		fmt.Printf("Sous-total: %s\n", viewmodel.FormatPrice(view.Subtotal))
		fmt.Printf("Livraison:  %s\n", viewmodel.FormatPrice(view.ShippingFee))
		fmt.Printf("Total:      %s\n", viewmodel.FormatPrice(view.Total))

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		qty := fs.Int("qty", 1, "quantity")
		price := fs.Int64("price", 0, "price snapshot (0 = let the server capture it)")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		if err := api.AddItem(ctx, *id, *qty, *price); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "qty":
		fs := flag.NewFlagSet("qty", flag.ExitOnError)
		item := fs.String("item", "", "cart item id")
		n := fs.Int("n", -1, "new quantity")
		_ = fs.Parse(flag.Args()[1:])
		if *item == "" || *n < 0 {
			fmt.Fprintln(os.Stderr, "need -item and -n")
			os.Exit(1)
		}
		// Quantity 0 is never persisted; it becomes a removal.
		var err error
		if *n == 0 {
			err = api.RemoveItem(ctx, *item)
		} else {
			err = api.UpdateItemQuantity(ctx, *item, *n)
		}
		if err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		item := fs.String("item", "", "cart item id")
		_ = fs.Parse(flag.Args()[1:])
		if *item == "" {
			fmt.Fprintln(os.Stderr, "need -item")
			os.Exit(1)
		}
		if err := api.RemoveItem(ctx, *item); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "clear":
		if err := api.ClearCart(ctx); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		phone := fs.String("phone", "", "contact phone (WhatsApp)")
		address := fs.String("address", "", "shipping address")
		notes := fs.String("notes", "", "order notes")
		_ = fs.Parse(flag.Args()[1:])

		logger, _ := zap.NewDevelopment()
		defer func() { _ = logger.Sync() }()

		coord := checkout.New(checkout.Config{
			Client:         api,
			Navigator:      terminalNavigator{},
			Mobile:         *mobile,
			ShippingFee:    shippingFee,
			WhatsAppNumber: whatsAppNumber,
			Logger:         logger,
		})
		res, err := coord.Submit(ctx, checkout.Input{Phone: *phone, Address: *address, Notes: *notes})
		if err != nil {
			fe := coord.FieldErrors()
			if fe.Phone != "" {
				fmt.Fprintln(os.Stderr, "phone:", fe.Phone)
			}
			if fe.Address != "" {
				fmt.Fprintln(os.Stderr, "address:", fe.Address)
			}
			if msg := coord.SubmitError(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(1)
		}
		fmt.Println("commande:", res.OrderID)

	default:
		usage()
	}
}

// terminalNavigator prints the deep link instead of opening a browser.
type terminalNavigator struct{}

func (terminalNavigator) OpenSameTab(url string) error {
	fmt.Println("WhatsApp:", url)
	return nil
}

func (terminalNavigator) OpenNewTab(url string) error {
	fmt.Println("WhatsApp (nouvel onglet):", url)
	return nil
}

// ---- helpers ----

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
