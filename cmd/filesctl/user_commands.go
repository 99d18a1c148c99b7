package main

import (
	"fmt"

	"github.com/filesmanager/filesmanager/sdk/authx"
	"github.com/urfave/cli/v2"
)

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Register a new account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Register with the API server at the specified address; " +
				"defaults to the server last logged in to",
		},
		cliFlagEmail,
		cliFlagPassword,
		cliFlagOutput,
	},
	Action: register,
}

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show the account you are logged in as",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: whoami,
}

func register(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	password, err := getPassword(c)
	if err != nil {
		return err
	}

	client, err := getAnonymousClient(c)
	if err != nil {
		return err
	}

	user, err := client.Users().Create(
		c.Context,
		authx.UserRegistration{
			Email:    c.String(flagEmail),
			Password: password,
		},
	)
	if err != nil {
		return err
	}

	fmt.Println("Registered:")
	return printUser(output, user)
}

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	user, err := client.Users().GetMe(c.Context)
	if err != nil {
		return err
	}

	return printUser(output, user)
}

func printUser(output string, user authx.User) error {
	return printOutput(
		output,
		user,
		[]interface{}{"ID", "EMAIL"},
		[]interface{}{user.ID, user.Email},
	)
}
