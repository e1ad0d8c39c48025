package main

import (
	"errors"
	"net/url"

	"github.com/urfave/cli/v2"
)

var removewebhook = cli.Command{
	Name:  "removewebhook",
	Usage: "remove a registered webhook",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the webhook to remove",
		},
	},
	Action: removeWebhookAction,
}

func removeWebhookAction(ctx *cli.Context) error {
	id := ctx.String("id")
	if id == "" {
		return errors.New("webhook id is required")
	}

	return daemonDelete("/v1/webhooks/" + url.PathEscape(id))
}
