/*
Package sneakers defines the common interfaces that tie together the
crypto-sneakers registry: the key-value store family, transactions and
messages, handlers and decorators, addresses and the result types returned
to the consensus engine.

The registry itself lives in x/sneaker. Everything in this root package is
infrastructure shared by the extension and by the external collaborators
(sale contracts, access control, pause switches) that drive it.
*/
package sneakers
