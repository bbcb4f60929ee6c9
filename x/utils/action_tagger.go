package utils

import (
	"github.com/iov-one/barter"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the key of the tag added by ActionTagger.
const ActionKey = "action"

// ActionTagger tags every successfully delivered transaction with
// action=<message path>, for example action=offer/accept, so clients can
// subscribe to one kind of message.
type ActionTagger struct{}

var _ barter.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check is a pass through.
func (ActionTagger) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	// A transaction without a message is rejected before it reaches the
	// handler.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
