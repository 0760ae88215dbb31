/*
Package errors implements custom error interfaces for the registry.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when necessary. Errors are categorized by root
instances created with the Register function. Each runtime error must wrap
one of the root errors so that client code can test for the category with
the Is method, while the ABCI layer can report a stable numeric code.
*/
package errors
