package main

import (
	"github.com/urfave/cli/v2"
)

var completeproposal = cli.Command{
	Name:  "completeproposal",
	Usage: "mark an accepted trade proposal as completed and swap item ownership",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "proposal",
			Usage: "the id of the accepted proposal to complete",
		},
	},
	Action: completeProposalAction,
}

func completeProposalAction(ctx *cli.Context) error {
	var reply map[string]interface{}
	if err := daemonPost("/v1/trades/complete", map[string]string{
		"proposal_id": ctx.String("proposal"),
	}, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
