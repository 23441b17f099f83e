/*
Package errors implements custom error interfaces for the whole module.

Each returned error is created from one of the root errors declared in
this package, or registered by an extension. Wrapping adds context while
keeping the root cause testable with the root's Is method. A stack trace
is attached to an error exactly once, at the lowest wrap.
*/
package errors
