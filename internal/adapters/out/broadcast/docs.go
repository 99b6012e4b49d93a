// Package broadcast fans order events out to in-process observers.
//
// Subscriptions are grouped in per-topic shards so that unrelated orders never
// contend. Publishing reads an immutable snapshot of a shard; subscribing and
// unsubscribing replace that snapshot under the shard's mutex.
//
// Every subscription owns a bounded mailbox and a pump goroutine. When the
// mailbox is full the oldest event is dropped, so a slow observer loses stale
// updates instead of slowing the publisher. An observer whose Deliver fails is
// removed without the publisher noticing.
package broadcast
