package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/common"
	councilerrors "boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

var (
	roomCmd       *cobra.Command
	roomCreateCmd *cobra.Command
	roomDeleteCmd *cobra.Command
	roomShowCmd   *cobra.Command
	roomListCmd   *cobra.Command

	flagListLimit   uint64
	flagListReverse bool
)

func init() {
	roomCmd = &cobra.Command{
		Use:   "room",
		Short: "Room management",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	roomCreateCmd = &cobra.Command{
		Use:   "create <room id> <owner> [<member>...]",
		Short: "Create room by root; the owner is a member",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			r, flagName, err := parseRoom(args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			if err := runRoomCreate(r); err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(r, c.OutOrStdout())
		},
	}

	roomDeleteCmd = &cobra.Command{
		Use:   "delete <room id>",
		Short: "Delete room and its proposals by root",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			if err := runRoomDelete(id); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	roomShowCmd = &cobra.Command{
		Use:   "show <room id>",
		Short: "Show room",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			r, err := runRoomShow(id)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(r, c.OutOrStdout())
		},
	}

	roomListCmd = &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			rooms, err := runRoomList(flagListReverse, flagListLimit)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(rooms, c.OutOrStdout())
		},
	}
	roomListCmd.Flags().Uint64Var(&flagListLimit, "limit", storage.DefaultMaxLimitListOptions, "maximum number of rooms")
	roomListCmd.Flags().BoolVar(&flagListReverse, "reverse", false, "list from the last room")

	roomCmd.AddCommand(roomCreateCmd, roomDeleteCmd, roomShowCmd, roomListCmd)
	rootCmd.AddCommand(roomCmd)
}

// parseRoom makes the room from `<room id> <owner> [<member>...]`.
func parseRoom(args []string) (*room.Room, string, error) {
	id, err := parseRoomID(args[0])
	if err != nil {
		return nil, "<room id>", err
	}

	owner := args[1]
	council := []string{owner}
	for _, member := range args[2:] {
		if _, found := common.InStringArray(council, member); found {
			continue
		}
		council = append(council, member)
	}

	r := room.NewRoom(id, owner, council)
	if err := r.IsWellFormed(); err != nil {
		return nil, "<member>", err
	}

	return r, "", nil
}

func requireRoot() error {
	if !flagRoot {
		return councilerrors.NotRoot
	}

	return nil
}

func runRoomCreate(r *room.Room) error {
	if err := requireRoot(); err != nil {
		return err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return err
	}
	defer st.Close()

	if exists, err := room.ExistsRoom(st, r.ID); err != nil {
		return err
	} else if exists {
		return councilerrors.RoomAlreadyExists.Clone().SetData("room", r.ID)
	}

	if err = r.Save(st); err != nil {
		return err
	}

	log.Info("room created", "room", r.ID, "owner", r.Owner, "council", len(r.Council))

	return nil
}

func runRoomDelete(id uint64) error {
	if err := requireRoot(); err != nil {
		return err
	}

	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	if exists, err := room.ExistsRoom(ec.st, id); err != nil {
		return err
	} else if !exists {
		return councilerrors.RoomNotFound.Clone().SetData("room", id)
	}

	if err = ec.engine.RemoveRoomCollective(id); err != nil {
		return err
	}
	if err = room.DeleteRoom(ec.st, id); err != nil {
		return err
	}

	log.Info("room deleted", "room", id)

	return nil
}

func runRoomShow(id uint64) (*room.Room, error) {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return room.GetRoom(st, id)
}

func runRoomList(reverse bool, limit uint64) ([]room.Room, error) {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	rooms := []room.Room{}
	iterFunc, closeFunc := room.GetRooms(st, storage.NewDefaultListOptions(reverse, nil, limit))
	defer closeFunc()
	for {
		r, hasNext := iterFunc()
		if !hasNext {
			break
		}
		rooms = append(rooms, *r)
	}

	return rooms, nil
}

var errNoRoom = errors.New("room id must be given")

func parseRoomID(s string) (uint64, error) {
	if len(s) < 1 {
		return 0, errNoRoom
	}

	id, err := common.ParseUint64(s)
	if err != nil {
		return 0, fmt.Errorf("invalid room id, %q", s)
	}

	return id, nil
}
