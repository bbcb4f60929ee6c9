/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets. Each bucket holds
one kind of Model, keyed by a primary key chosen by the extension, and may
maintain any number of secondary indexes that map a derived value back to
the primary keys.

Every bucket can be registered with a QueryRouter under its name, and every
index under "name/index", so that clients can read the state through abci
queries.
*/
package orm
