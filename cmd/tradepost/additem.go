package main

import (
	"github.com/urfave/cli/v2"
)

var additem = cli.Command{
	Name:  "additem",
	Usage: "list a new item on the marketplace",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "the item title",
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "the item price",
		},
		&cli.StringFlag{
			Name:  "seller",
			Usage: "the id of the seller listing the item",
		},
	},
	Action: addItemAction,
}

func addItemAction(ctx *cli.Context) error {
	var reply map[string]interface{}
	if err := daemonPost("/v1/items", map[string]string{
		"title":     ctx.String("title"),
		"price":     ctx.String("price"),
		"seller_id": ctx.String("seller"),
	}, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
