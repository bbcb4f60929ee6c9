/*
Package barter defines all common interfaces to tie together the various
subpackages of the swap chain: storage, transactions, handlers, queries and
genesis loading. It also contains the helpers to work with conditions,
addresses, context and abci results.

# Context

We pass context through context.Context between app, middleware, and
handlers. To do so, barter defines some common keys to store info, such as
block height and chain id. Each extension, such as auth, may add its own keys
to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package barter
