package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/filesmanager/filesmanager/sdk"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to a files-manager API server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagServer,
			Aliases:  []string{"s"},
			Usage:    "Log into the API server at the specified address (required)",
			Required: true,
		},
		cliFlagEmail,
		cliFlagPassword,
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of the files-manager API server",
	Action: logout,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	email := c.String(flagEmail)
	password, err := getPassword(c)
	if err != nil {
		return err
	}

	client := sdk.NewAPIClient(address, "", c.Bool(flagInsecure))
	token, err := client.Sessions().Create(c.Context, email, password)
	if err != nil {
		return err
	}

	if err := saveConfig(
		&config{
			APIAddress: address,
			APIToken:   token.Value,
		},
	); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s.\n", email)
	return nil
}

func logout(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	if err := client.Sessions().Delete(c.Context); err != nil {
		return err
	}

	if err := deleteConfig(); err != nil {
		return err
	}

	fmt.Println("Logout was successful.")
	return nil
}

// getPassword returns the --password flag value or prompts for one.
func getPassword(c *cli.Context) (string, error) {
	password := c.String(flagPassword)
	for password == "" {
		prompt := &survey.Password{
			Message: "Password",
		}
		if err := survey.AskOne(prompt, &password); err != nil {
			return "", err
		}
	}
	return password, nil
}
