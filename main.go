package main

import (
	"log"
	"os"

	"go-bizops-dashboard/config"
	"go-bizops-dashboard/controllers"
	"go-bizops-dashboard/routes"
	"go-bizops-dashboard/service"
	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bizops",
		Usage: "invoices, quotations and offer letters API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"BIZOPS_CONFIG"}},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "migrate, seed and start the HTTP server",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "addr", Usage: "listen address, overrides config"}},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "create or update the database schema",
				Action: func(c *cli.Context) error {
					if _, err := connect(c); err != nil {
						return err
					}
					return config.Migrate(config.DB)
				},
			},
			{
				Name:  "seed",
				Usage: "insert the permission codes",
				Action: func(c *cli.Context) error {
					if _, err := connect(c); err != nil {
						return err
					}
					return config.SeedPermissions(config.DB)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connect(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	return cfg, config.ConnectDB(cfg.Database)
}

func serve(c *cli.Context) error {
	cfg, err := connect(c)
	if err != nil {
		return err
	}
	if err := config.Migrate(config.DB); err != nil {
		return err
	}
	if err := config.SeedPermissions(config.DB); err != nil {
		return err
	}

	if cfg.Auth.AdminSecret != "" {
		utils.AdminSecret = []byte(cfg.Auth.AdminSecret)
	}
	if cfg.Auth.UserSecret != "" {
		utils.UserSecret = []byte(cfg.Auth.UserSecret)
	}
	if cfg.Auth.TokenTTL > 0 {
		controllers.TokenTTL = cfg.Auth.TokenTTL
	}
	controllers.SetupServices(config.DB, service.Options{
		DefaultDueDays:   cfg.Docs.DefaultDueDays,
		DefaultValidDays: cfg.Docs.DefaultValidDays,
	})

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "BizOps API is running"})
	})

	addr := cfg.Addr
	if a := c.String("addr"); a != "" {
		addr = a
	}
	log.Printf("listening on %s", addr)
	return r.Run(addr)
}
