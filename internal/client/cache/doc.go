// Package cache is the client-side resource cache of the console.
//
// A Cache[V] keeps one Entry per Key. Readers Subscribe to a key, read
// snapshots with Read or receive them from Subscription.Updates, and
// Unsubscribe when done. Writers never touch entries; they call Invalidate.
//
// Rules the cache enforces:
//
//   - one fetch at a time per key: subscribers arriving while a fetch is in
//     flight share it;
//   - a failed entry is fetched again by the next Subscribe, once;
//   - Invalidate with subscribers refetches in the background and keeps the
//     previous data readable meanwhile; without subscribers it drops the
//     entry;
//   - each fetch carries a generation and only the latest generation may
//     settle an entry, so responses arriving out of order never overwrite
//     fresher state;
//   - entries outlive their last subscriber until invalidated or disposed.
//
// Caches are plain values owned by whoever constructs them; there is no
// package-level state. Dispose releases a cache.
package cache
