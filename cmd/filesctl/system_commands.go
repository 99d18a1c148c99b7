package main

import (
	"github.com/urfave/cli/v2"
)

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Show whether the server's backing stores are reachable",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Query the API server at the specified address; defaults " +
				"to the server last logged in to",
		},
		cliFlagOutput,
	},
	Action: status,
}

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Show how many users and files the server holds",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Query the API server at the specified address; defaults " +
				"to the server last logged in to",
		},
		cliFlagOutput,
	},
	Action: stats,
}

func status(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getAnonymousClient(c)
	if err != nil {
		return err
	}

	st, err := client.System().Status(c.Context)
	if err != nil {
		return err
	}

	return printOutput(
		output,
		st,
		[]interface{}{"REDIS", "DB"},
		[]interface{}{upOrDown(st.Redis), upOrDown(st.DB)},
	)
}

func stats(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getAnonymousClient(c)
	if err != nil {
		return err
	}

	st, err := client.System().Stats(c.Context)
	if err != nil {
		return err
	}

	return printOutput(
		output,
		st,
		[]interface{}{"USERS", "FILES"},
		[]interface{}{st.Users, st.Files},
	)
}

func upOrDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
