// Package swaptest provides mocks and helpers for testing handlers and
// extensions without standing up a full application.
package swaptest
