package main

import (
	"net/url"

	"github.com/urfave/cli/v2"
)

var listitems = cli.Command{
	Name:  "listitems",
	Usage: "list the items of a seller",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "seller",
			Usage: "the id of the seller to list items for",
		},
	},
	Action: listItemsAction,
}

func listItemsAction(ctx *cli.Context) error {
	var reply []map[string]interface{}
	path := "/v1/items?seller_id=" + url.QueryEscape(ctx.String("seller"))
	if err := daemonGet(path, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
