package cmd

import (
	"io"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	councilerrors "boscoin.io/council/lib/errors"
)

var showCmd *cobra.Command

type proposalView struct {
	Hash     string           `json:"hash" yaml:"hash"`
	Proposal action.Action    `json:"proposal" yaml:"proposal"`
	Voting   collective.Votes `json:"voting" yaml:"voting"`
}

type roomView struct {
	Room           uint64         `json:"room" yaml:"room"`
	MotionDuration uint64         `json:"motion_duration" yaml:"motion_duration"`
	ProposalCount  uint32         `json:"proposal_count" yaml:"proposal_count"`
	Proposals      []proposalView `json:"proposals" yaml:"proposals"`
}

func init() {
	showCmd = &cobra.Command{
		Use:   "show <room id> [<hash>]",
		Short: "Show the pending proposals of the room",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			var hash string
			if len(args) > 1 {
				hash = args[1]
			}

			if err := runShow(c.OutOrStdout(), id, hash); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	rootCmd.AddCommand(showCmd)
}

func loadProposalView(engine *collective.Engine, id uint64, hash string) (view proposalView, err error) {
	var found bool
	if view.Proposal, found, err = engine.ProposalOf(id, hash); err != nil {
		return
	} else if !found {
		err = councilerrors.ProposalMissing.Clone().SetData("room", id).SetData("hash", hash)
		return
	}

	if view.Voting, found, err = engine.Voting(id, hash); err != nil {
		return
	} else if !found {
		err = councilerrors.ProposalMissing.Clone().SetData("room", id).SetData("hash", hash)
		return
	}
	view.Hash = hash

	return
}

func runShow(w io.Writer, id uint64, hash string) error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	if len(hash) > 0 {
		view, err := loadProposalView(ec.engine, id, hash)
		if err != nil {
			return err
		}
		return encode(view, w)
	}

	view := roomView{
		Room:           id,
		MotionDuration: ec.engine.MotionDuration(id),
		Proposals:      []proposalView{},
	}
	if view.ProposalCount, err = ec.engine.ProposalCount(id); err != nil {
		return err
	}

	hashes, err := ec.engine.Proposals(id)
	if err != nil {
		return err
	}
	for _, h := range hashes {
		pv, err := loadProposalView(ec.engine, id, h)
		if err != nil {
			return err
		}
		view.Proposals = append(view.Proposals, pv)
	}

	return encode(view, w)
}
