package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/teia-community/teia-dao/repo"
)

var configCMD = &cli.Command{
	Name:  "config",
	Usage: "Manage the DAO repo config",
	Subcommands: []*cli.Command{
		{
			Name:   "generate",
			Usage:  "Write the default config if the repo does not exist yet",
			Action: generate,
		},
		{
			Name:   "show",
			Usage:  "Print the effective config",
			Action: show,
		},
		{
			Name:   "check",
			Usage:  "Check that the config file parses and validates",
			Action: check,
		},
	},
}

func generate(ctx *cli.Context) error {
	r, err := repo.Load(ctx.String("repo"))
	if err != nil {
		return err
	}
	fmt.Printf("DAO repo initialized at %s\n", r.Config.RepoRoot)
	return nil
}

func show(ctx *cli.Context) error {
	r, err := repo.Load(ctx.String("repo"))
	if err != nil {
		return err
	}
	fmt.Printf("repo root: %s\n", r.Config.RepoRoot)
	fmt.Printf("state dir: %s\n", r.StateDir())
	fmt.Printf("log level: %s\n", r.Config.Log.Level)
	fmt.Printf("vote method: %s\n", r.Config.Governance.VoteMethod)
	fmt.Printf("quorum: %d\n", r.Config.Governance.Quorum)
	fmt.Printf("administrator: %s\n", r.Config.Accounts.Administrator)
	fmt.Printf("guardians: %s\n", r.Config.Accounts.Guardians)
	for _, rep := range r.Config.Accounts.Representatives {
		fmt.Printf("representative: %s (%s)\n", rep.Address, rep.Community)
	}
	return nil
}

func check(ctx *cli.Context) error {
	r, err := repo.Load(ctx.String("repo"))
	if err != nil {
		return err
	}
	if _, err := r.Config.Governance.Parameters(); err != nil {
		return err
	}
	fmt.Println("config ok")
	return nil
}
