package sneakerstest

import sneakers "github.com/HPrieto/crypto-sneakers"

// Tx represents a transaction around a single message, to be processed by a
// handler under test.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg sneakers.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ sneakers.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (sneakers.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a mock message.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ sneakers.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
