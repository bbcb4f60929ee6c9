/*
Package offer implements a two party atomic swap.

Party one deposits tokens into a custodial account and publishes an offer
that asks a fixed amount of another token from a single counterparty. The
counterparty may accept the offer, which exchanges both amounts at once, or
party one may close the offer and take the deposit back.

Custodial accounts are owned by the escrow authority. The authority is a
condition derived from a fixed label, no private key exists for it, so
tokens leave a custodial account only through this extension's handlers.
Each offer is stored under an address derived from both parties, therefore
at most one offer can be open for a pair at a time.
*/
package offer
