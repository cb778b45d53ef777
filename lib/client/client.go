package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	rpcjson "github.com/gorilla/rpc/json"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/rpc"
	"boscoin.io/council/lib/version"
)

const DefaultTimeout = 10 * time.Second

// Client calls the `Council` JSON-RPC service of `council serve`.
type Client struct {
	endpoint *common.Endpoint
	http     *common.HTTPClient
}

func NewClient(endpoint *common.Endpoint, retrySetting *common.RetrySetting) (*Client, error) {
	hc, err := common.NewHTTPClient(DefaultTimeout, retrySetting)
	if err != nil {
		return nil, err
	}

	return &Client{endpoint: endpoint, http: hc}, nil
}

func (c *Client) Close() {
	c.http.Close()
}

func (c *Client) Endpoint() *common.Endpoint {
	return c.endpoint
}

func (c *Client) call(method string, args, result interface{}) error {
	message, err := rpcjson.EncodeClientRequest(rpc.ServiceName+"."+method, args)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", c.endpoint.String(), bytes.NewBuffer(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Error{Status: resp.StatusCode}
	}

	err = toError(rpcjson.DecodeClientResponse(resp.Body, result))
	if _, ok := err.(*errors.Error); !ok && err != nil && resp.StatusCode != http.StatusOK {
		return Error{Status: resp.StatusCode}
	}

	return err
}

// toError restores the `*errors.Error` sent by the server from the error
// text, so the codes can be compared with `errors.Is`.
func toError(err error) error {
	if err == nil {
		return nil
	}

	var ce errors.Error
	if jerr := json.Unmarshal([]byte(err.Error()), &ce); jerr != nil || ce.Code == 0 {
		return err
	}

	return &ce
}

func (c *Client) Proposals(roomID uint64) ([]string, error) {
	var result rpc.ProposalsResult
	if err := c.call("Proposals", &rpc.RoomArgs{Room: roomID}, &result); err != nil {
		return nil, err
	}

	return result.Proposals, nil
}

func (c *Client) ProposalOf(roomID uint64, hash string) (action.Action, bool, error) {
	var result rpc.ProposalOfResult
	if err := c.call("ProposalOf", &rpc.ProposalArgs{Room: roomID, Hash: hash}, &result); err != nil {
		return action.Action{}, false, err
	}
	if !result.Found {
		return action.Action{}, false, nil
	}

	return *result.Proposal, true, nil
}

func (c *Client) Voting(roomID uint64, hash string) (collective.Votes, bool, error) {
	var result rpc.VotingResult
	if err := c.call("Voting", &rpc.ProposalArgs{Room: roomID, Hash: hash}, &result); err != nil {
		return collective.Votes{}, false, err
	}
	if !result.Found {
		return collective.Votes{}, false, nil
	}

	return *result.Voting, true, nil
}

func (c *Client) ProposalCount(roomID uint64) (uint32, error) {
	var result rpc.ProposalCountResult
	if err := c.call("ProposalCount", &rpc.RoomArgs{Room: roomID}, &result); err != nil {
		return 0, err
	}

	return result.Count, nil
}

func (c *Client) MotionDuration(roomID uint64) (uint64, error) {
	var result rpc.MotionDurationResult
	if err := c.call("MotionDuration", &rpc.RoomArgs{Room: roomID}, &result); err != nil {
		return 0, err
	}

	return result.MotionDuration, nil
}

func (c *Client) Room(roomID uint64) (r room.Room, err error) {
	err = c.call("Room", &rpc.RoomArgs{Room: roomID}, &r)
	return
}

func (c *Client) Rooms(reverse bool, cursor []byte, limit uint64) ([]room.Room, error) {
	var result rpc.RoomsResult
	args := &rpc.RoomsArgs{Reverse: reverse, Cursor: cursor, Limit: limit}
	if err := c.call("Rooms", args, &result); err != nil {
		return nil, err
	}

	return result.Rooms, nil
}

func (c *Client) Version() (info version.Info, err error) {
	err = c.call("Version", &rpc.VersionArgs{}, &info)
	return
}
