package main

import (
	"github.com/urfave/cli/v2"
)

var respondproposal = cli.Command{
	Name:  "respondproposal",
	Usage: "accept or reject a pending trade proposal",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "proposal",
			Usage: "the id of the proposal to respond to",
		},
		&cli.StringFlag{
			Name:  "responder",
			Usage: "the id of the responding user, must be the target owner",
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "either accept or reject",
		},
	},
	Action: respondProposalAction,
}

func respondProposalAction(ctx *cli.Context) error {
	var reply map[string]interface{}
	if err := daemonPost("/v1/trades/respond", map[string]string{
		"proposal_id":  ctx.String("proposal"),
		"responder_id": ctx.String("responder"),
		"action":       ctx.String("action"),
	}, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
