package tokenswap

import (
	"fmt"
	"reflect"

	"github.com/iov-one/tokenswap/errors"
)

// Marshaller is anything that can be represented in binary
//
// Marshall may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request processed within a single transaction. It is
// persistent data to be processed by a Handler. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate returns an error if the message content is not sane.
	Validate() error

	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Tx represents the authenticated wrapper around a message. Custody of
// keys and signature verification belong to the embedding application;
// the core only needs to extract the message.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is of
// the expected type and validates it. The result is written into dest,
// which must be a non-nil pointer to a Msg implementation.
func LoadMsg(tx Tx, dest Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "transaction without a message")
	}

	if !reflect.TypeOf(msg).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", msg, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(msg).Elem())

	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, fmt.Sprintf("invalid %T message", dest))
	}
	return nil
}
