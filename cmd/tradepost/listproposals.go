package main

import (
	"errors"
	"net/url"

	"github.com/urfave/cli/v2"
)

var listproposals = cli.Command{
	Name:  "listproposals",
	Usage: "list trade proposals by proposer, target owner or item",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "proposer",
			Usage: "filter by the id of the proposing user",
		},
		&cli.StringFlag{
			Name:  "owner",
			Usage: "filter by the id of the target item owner",
		},
		&cli.StringFlag{
			Name:  "item",
			Usage: "filter by the id of the target item",
		},
	},
	Action: listProposalsAction,
}

func listProposalsAction(ctx *cli.Context) error {
	var path string
	switch {
	case ctx.String("proposer") != "":
		path = "/v1/trades?proposer_id=" + url.QueryEscape(ctx.String("proposer"))
	case ctx.String("owner") != "":
		path = "/v1/trades?owner_id=" + url.QueryEscape(ctx.String("owner"))
	case ctx.String("item") != "":
		path = "/v1/trades?item_id=" + url.QueryEscape(ctx.String("item"))
	default:
		return errors.New("one of --proposer, --owner or --item is required")
	}

	var reply []map[string]interface{}
	if err := daemonGet(path, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
