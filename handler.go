package sneakers

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages. In this
// repository it represents "issue a sneaker", "transfer a sneaker" and
// similar registry operations.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, circuit breaking, or fee handling, to many Handlers.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// of given type. Using a message path that is already registered
	// must panic.
	Handle(path string, h Handler)
}

// Options are the application options. Each extension can look up its key
// and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop and no
// error if the key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
