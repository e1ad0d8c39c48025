package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

var statePath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tradepost-operator/state.json"
	}
	return filepath.Join(home, ".tradepost-operator", "state.json")
}()

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "tradepost operator CLI"
	app.Usage = "Command line interface for tradepostd daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&additem,
		&listitems,
		&listproposals,
		&respondproposal,
		&completeproposal,
		&addwebhook,
		&removewebhook,
		&listwebhooks,
	)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "[tradepost]", err)
		os.Exit(1)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	//nolint
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		//nolint
		os.MkdirAll(dir, os.ModeDir|0755)
	}

	currentData, _ := getState()
	if currentData == nil {
		currentData = map[string]string{}
	}
	for k, v := range data {
		currentData[k] = v
	}

	jsonString, err := json.Marshal(currentData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func getBaseURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["daemon"]
	if !ok {
		return "", errors.New("set daemon address with `config set daemon`")
	}
	return "http://" + address, nil
}

func daemonGet(path string, out interface{}) error {
	baseURL, err := getBaseURL()
	if err != nil {
		return err
	}
	res, err := http.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return parseResponse(res, out)
}

func daemonPost(path string, body, out interface{}) error {
	baseURL, err := getBaseURL()
	if err != nil {
		return err
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := http.Post(baseURL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return parseResponse(res, out)
}

func daemonDelete(path string) error {
	baseURL, err := getBaseURL()
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return parseResponse(res, nil)
}

func parseResponse(res *http.Response, out interface{}) error {
	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("daemon replied with status %d: %s", res.StatusCode, string(buf))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(buf, out)
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}
