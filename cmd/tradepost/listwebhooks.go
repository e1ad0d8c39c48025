package main

import (
	"net/url"

	"github.com/urfave/cli/v2"
)

var listwebhooks = cli.Command{
	Name:  "listwebhooks",
	Usage: "list all webhooks registered for some topic",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "topic",
			Usage: "the topic to filter hooks by",
			Value: "*",
		},
	},
	Action: listWebhooksAction,
}

func listWebhooksAction(ctx *cli.Context) error {
	var reply []map[string]interface{}
	path := "/v1/webhooks?topic=" + url.QueryEscape(ctx.String("topic"))
	if err := daemonGet(path, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
