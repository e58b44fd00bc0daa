package main

import (
	"encoding/json"
	"fmt"
	"os"

	"lumen/internal/bridge"
	"lumen/internal/catalog"
	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/reconcile"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "reconcile",
		Usage: "Variant healing and catalog repair for the Lumen storefront",

		Commands: []*cli.Command{
			runCommand(),
			orphansCommand(),
			deleteOptionCommand(),
			exportOrdersCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deps loads the config and opens everything the commands share.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.Database
	catalog *catalog.Catalog
}

func setup() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &deps{
		cfg:     cfg,
		log:     log,
		db:      db,
		catalog: catalog.New(db.DB),
	}, nil
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Reconcile variants against the attribute catalog",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "product",
				Usage: "Product id to reconcile (repeatable; default: whole catalog)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report healing updates without applying them",
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "Publish search-sync events for changed products",
			},
		},
		Action: func(c *cli.Context) error {
			d, err := setup()
			if err != nil {
				return err
			}
			defer d.db.Close()

			var publisher reconcile.Publisher
			if c.Bool("publish") {
				pub := events.NewPublisher(d.cfg.KafkaBrokers, d.cfg.SyncTopic, d.log)
				defer pub.Close()
				publisher = pub
			}

			runner := reconcile.NewRunner(d.catalog, publisher, d.log)
			summary, err := runner.Run(c.Context, reconcile.RunOptions{
				ProductIDs: c.StringSlice("product"),
				DryRun:     c.Bool("dry-run"),
			})
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
}

func orphansCommand() *cli.Command {
	return &cli.Command{
		Name:  "orphans",
		Usage: "List variants lacking option selections on products that define options",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "product",
				Usage: "Product id to inspect (repeatable; default: whole catalog)",
			},
		},
		Action: func(c *cli.Context) error {
			d, err := setup()
			if err != nil {
				return err
			}
			defer d.db.Close()

			ids := c.StringSlice("product")
			if len(ids) == 0 {
				ids, err = d.catalog.ProductIDs(c.Context)
				if err != nil {
					return err
				}
			}

			orphans := make(map[string][]string)
			for _, id := range ids {
				product, err := d.catalog.Product(c.Context, id)
				if err != nil {
					if reconcile.IsNotFound(err) {
						d.log.Warn("product %s not found, skipping", id)
						continue
					}
					return err
				}
				if found := reconcile.FindOrphans(product); len(found) > 0 {
					orphans[product.ID] = found
				}
			}
			return printJSON(orphans)
		},
	}
}

func deleteOptionCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete-option",
		Usage: "Delete a product option and its variants without sales history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "option",
				Usage:    "Option id to delete",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			d, err := setup()
			if err != nil {
				return err
			}
			defer d.db.Close()

			runner := reconcile.NewRunner(d.catalog, nil, d.log)
			report, err := runner.SafeDeleteOption(c.Context, c.String("option"))
			if report != nil {
				printJSON(report)
			}
			return err
		},
	}
}

func exportOrdersCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-orders",
		Usage: "Push stored orders to the accounting bridge",
		Action: func(c *cli.Context) error {
			d, err := setup()
			if err != nil {
				return err
			}
			defer d.db.Close()

			if d.cfg.Bridge.Endpoint == "" {
				return fmt.Errorf("BRIDGE_ENDPOINT is not configured")
			}

			client := bridge.NewClient(d.cfg.Bridge, d.log)
			exporter := bridge.NewExporter(client, d.catalog, d.log)
			summary, err := exporter.ExportOrders(c.Context)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
