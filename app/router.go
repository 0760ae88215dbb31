package app

import (
	"fmt"
	"regexp"

	sneakers "github.com/HPrieto/crypto-sneakers"
	"github.com/HPrieto/crypto-sneakers/errors"
)

// Router is a registry of message handlers. Each message is directed to a
// handler by its path.
type Router struct {
	routes map[string]sneakers.Handler
}

var _ sneakers.Registry = (*Router)(nil)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]{4,64}$`).MatchString

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]sneakers.Handler),
	}
}

// Handle assigns the given handler to handle processing of every message
// with the given path. Registering a handler for an already registered path
// panics, as does a malformed path.
func (r *Router) Handle(path string, h sneakers.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("handler for path %q is already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for the given path. A handler is
// returned for any path, and for those without a registration it is one
// that always fails with ErrNotFound.
func (r *Router) Handler(path string) sneakers.Handler {
	h, ok := r.routes[path]
	if !ok {
		return notFoundHandler(path)
	}
	return h
}

// notFoundHandler always returns ErrNotFound, carrying the path that was
// requested.
type notFoundHandler string

var _ sneakers.Handler = notFoundHandler("")

func (path notFoundHandler) Check(sneakers.Context, sneakers.KVStore, sneakers.Tx) (*sneakers.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(sneakers.Context, sneakers.KVStore, sneakers.Tx) (*sneakers.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
