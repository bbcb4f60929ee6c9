/*
Package token implements the ledger the escrow runs on. Each mint is
identified by its ticker and each holder owns at most one account per mint.
An account is stored under an address derived from its owner and its
ticker, so that anyone can compute where the tokens of a holder live.

The Controller exposes the transfer contract used by other extensions:
a transfer moves the amount from one account to another if the authority
owns the source account and the source holds enough tokens. Otherwise it
fails and nothing is changed.
*/
package token
