package app

import (
	"crypto/sha512"

	"github.com/iov-one/barter/commands"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
)

const (
	examplePhrase  = "barter testgen"
	exampleChainID = "barter-testgen"
)

// ExampleKeys returns the two deterministic keys the examples are built
// with. The first key is party one of the example offer.
func ExampleKeys() []*crypto.PrivateKey {
	seed := sha512.Sum512([]byte(examplePhrase))
	keys := make([]*crypto.PrivateKey, 2)
	for i := range keys {
		key, err := crypto.DeriveKey(seed[:], crypto.DerivationPath(uint32(i)))
		if err != nil {
			panic(err)
		}
		keys[i] = key
	}
	return keys
}

// Examples returns the messages, models and a signed transaction in the
// form clients produce them, for the testgen command.
func Examples() []commands.Example {
	keys := ExampleKeys()
	alice := keys[0].PublicKey().Address()
	bob := keys[1].PublicKey().Address()

	open := &token.OpenAccountMsg{
		Owner:  alice,
		Ticker: "NTK",
	}
	transfer := &token.TransferMsg{
		Source:      token.AccountAddress(alice, "MCK"),
		Destination: token.AccountAddress(bob, "MCK"),
		Amount:      50,
	}
	create := &offer.CreateOfferMsg{
		PartyOne:       alice,
		PartyTwo:       bob,
		SendAccount:    token.AccountAddress(alice, "MCK"),
		ReceiveAccount: token.AccountAddress(alice, "NTK"),
		SendMint:       "MCK",
		ReceiveMint:    "NTK",
		SendAmount:     100,
		AskAmount:      20,
	}
	closeMsg := &offer.CloseOfferMsg{
		PartyOne:       alice,
		PartyTwo:       bob,
		ReceiveAccount: token.AccountAddress(alice, "MCK"),
	}
	accept := &offer.AcceptOfferMsg{
		PartyOne:        alice,
		PartyTwo:        bob,
		PartyOneReceive: token.AccountAddress(alice, "NTK"),
		PartyTwoSend:    token.AccountAddress(bob, "NTK"),
		PartyTwoReceive: token.AccountAddress(bob, "MCK"),
		OfferMint:       "MCK",
		AskMint:         "NTK",
	}
	record := &offer.Offer{
		PartyOne:       alice,
		PartyTwo:       bob,
		ReceiveAccount: token.AccountAddress(alice, "NTK"),
		OfferToken:     "MCK",
		OfferAmount:    100,
		AskToken:       "NTK",
		AskAmount:      20,
	}
	account := &token.Account{
		Owner:  alice,
		Ticker: "MCK",
		Amount: 100,
	}

	tx := &Tx{Msg: create}
	sig, err := sigs.SignTx(keys[0], tx, exampleChainID, 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "open_account_msg", Obj: open},
		{Filename: "transfer_msg", Obj: transfer},
		{Filename: "create_offer_msg", Obj: create},
		{Filename: "close_offer_msg", Obj: closeMsg},
		{Filename: "accept_offer_msg", Obj: accept},
		{Filename: "offer", Obj: record},
		{Filename: "account", Obj: account},
		{Filename: "signature", Obj: sig},
		{Filename: "signed_tx", Obj: tx},
	}
}
