package orm

import (
	"github.com/iov-one/tokenswap"
)

// Validater is implemented by any entity that can check its own sanity.
type Validater interface {
	Validate() error
}

// CloneableData is an intelligent Value that can be embedded
// in a simple object to handle much of the details.
type CloneableData interface {
	Validater
	tokenswap.Persistent
	Copy() CloneableData
}

// Model is implemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	tokenswap.Persistent
	Validater
	Copy() CloneableData
}

// Object wraps a key and a value stored in a bucket.
type Object interface {
	Validater

	// Key returns the key to store the object under
	Key() []byte
	// Value gets the value stored in the object
	Value() tokenswap.Persistent

	// SetKey may be used to update the key
	SetKey([]byte)
	// Clone will make a deep copy of the object
	Clone() Object
}

// Cloneable is an object that can be cloned, used as a prototype
// in a Bucket.
type Cloneable interface {
	Clone() Object
}
