package sneakers

import (
	"reflect"

	"github.com/HPrieto/crypto-sneakers/errors"
)

// Msg is a message for the registry to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate returns error if the message content is not valid. This
	// is a local check only that does not require any state access.
	Validate() error

	// Path returns the message path. It is used by the Registry to
	// locate the proper Handler. Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures the message is
// valid and loads it into the destination. Destination must be a pointer to
// the same message type that the transaction carries.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dval := reflect.ValueOf(destination)
	if dval.Kind() != reflect.Ptr || dval.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer, got %T", destination)
	}
	mval := reflect.ValueOf(msg)
	if mval.Type() != dval.Type() {
		return errors.Wrapf(errors.ErrType, "cannot load %T message into %T", msg, destination)
	}
	dval.Elem().Set(mval.Elem())
	return nil
}
