package main

import "github.com/urfave/cli/v2"

const (
	flagEmail    = "email"
	flagInsecure = "insecure"
	flagOutput   = "output"
	flagPassword = "password"
	flagServer   = "server"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
	cliFlagEmail = &cli.StringFlag{
		Name:     flagEmail,
		Aliases:  []string{"e"},
		Usage:    "Email address of the account (required)",
		Required: true,
	}
	cliFlagPassword = &cli.StringFlag{
		Name:    flagPassword,
		Aliases: []string{"p"},
		Usage: "Password of the account; if not specified, you will be " +
			"prompted for it",
	}
)
