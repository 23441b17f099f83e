/*
Package x contains some standard extension points, which are
fairly often used, but not necessarily in all applications.

The most important is the Authenticator, the interface handlers use
to learn which identities signed the current transaction without
binding themselves to one signature scheme.
*/
package x
