package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/filesmanager/filesmanager/internal/file"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type config struct {
	APIAddress string `json:"apiAddress"`
	APIToken   string `json:"apiToken"`
}

func getConfig() (*config, error) {
	configFile, err := getConfigFile()
	if err != nil {
		return nil, err
	}
	if !file.Exists(configFile) {
		return nil, errors.Errorf(
			"no configuration was found at %s; please use "+
				"`filesctl login` to continue",
			configFile,
		)
	}

	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading config file at %s",
			configFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing config file at %s",
			configFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	home, err := getHome()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(home, 0700); err != nil {
		return errors.Wrapf(err, "error creating %s", home)
	}
	configFile := path.Join(home, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	// The file holds a live session token
	if err :=
		ioutil.WriteFile(configFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

func deleteConfig() error {
	configFile, err := getConfigFile()
	if err != nil {
		return err
	}
	if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error deleting configuration")
	}
	return nil
}

func getConfigFile() (string, error) {
	home, err := getHome()
	if err != nil {
		return "", err
	}
	return path.Join(home, "config"), nil
}

func getHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".files-manager"), nil
}
