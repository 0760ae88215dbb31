/*
Package sneaker implements an on-chain registry of non-fungible sneaker
collectibles.

Each token carries immutable provenance data (brand, name, size, style code,
colorway, retail price, manufacture and release timestamps and a globally
unique catalog ticker) and a mutable ownership record. Tokens are issued
with sequential identities and can never be destroyed.

Ownership follows a single-owner model with an optional single delegate
approval per token. All ownership changes flow through one routine that
keeps per-owner balances in sync and clears any outstanding approval, so
that a delegate never survives an ownership change. Transfers emit tags
that form the externally observable event log.
*/
package sneaker
