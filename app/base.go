package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete ABCI application. It decodes the transaction bytes
// with its TxDecoder and passes the transaction to its handler, usually a
// decorator chain ending with a Router. Storage, genesis and queries are
// provided by the embedded StoreApp.
type BaseApp struct {
	*StoreApp
	decoder barter.TxDecoder
	handler barter.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application processing transactions with handler.
// With debug set, error responses carry full messages and stack traces.
func NewBaseApp(store *StoreApp, decoder barter.TxDecoder, handler barter.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction against the deliver store.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return barter.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	if err != nil {
		return barter.DeliverTxError(err, b.debug)
	}
	return res.ToABCI()
}

// CheckTx validates the transaction against the check store, that is the
// committed state with all transactions checked since the last commit.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return barter.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	if err != nil {
		return barter.CheckTxError(err, b.debug)
	}
	return res.ToABCI()
}

func (b BaseApp) txContext(call string, tx barter.Tx) barter.Context {
	return barter.WithLogInfo(b.BlockContext(), "call", call, "path", barter.GetPath(tx))
}

// decode runs the decoder. Malformed input must never crash the node, so a
// panicking decoder is reported as an error.
func (b BaseApp) decode(txBytes []byte) (tx barter.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return tx, nil
}
