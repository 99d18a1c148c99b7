package main

import (
	"github.com/filesmanager/filesmanager/sdk"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// getClient returns a client for the server the user last logged in to.
func getClient(c *cli.Context) (sdk.APIClient, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	return sdk.NewAPIClient(
		config.APIAddress,
		config.APIToken,
		c.Bool(flagInsecure),
	), nil
}

// getAnonymousClient returns a client that carries no token. The server is
// taken from the --server flag if set, otherwise from configuration.
func getAnonymousClient(c *cli.Context) (sdk.APIClient, error) {
	address := c.String(flagServer)
	if address == "" {
		config, err := getConfig()
		if err != nil {
			return nil, errors.Wrap(
				err,
				"no --server was specified and no configuration exists",
			)
		}
		address = config.APIAddress
	}
	return sdk.NewAPIClient(address, "", c.Bool(flagInsecure)), nil
}
