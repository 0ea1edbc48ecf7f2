package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "teiadao"
	app.Usage = "Local sandbox for the Teia community DAO contracts"
	app.Compiled = time.Now()

	cli.VersionPrinter = func(c *cli.Context) {
		printVersion()
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "repo",
			Usage: "DAO repo path (default ~/.teia-dao)",
		},
	}

	app.Commands = []*cli.Command{
		configCMD,
		{
			Name:   "init",
			Usage:  "Initialize the DAO repo with a default config",
			Action: generate,
		},
		{
			Name:   "demo",
			Usage:  "Run a full proposal lifecycle on a fresh sandbox chain",
			Action: demo,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "Print version information",
			Action: func(ctx *cli.Context) error {
				printVersion()
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
