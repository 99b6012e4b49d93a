// Package dispatch defines what observers of an order can receive and how they
// express interest: per order, or through a role-wide feed.
package dispatch
