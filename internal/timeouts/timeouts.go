// Package timeouts defines the timeout policy shared by the gateway, the
// controllers and the command layer. Every network or storage call runs
// under one of these bounds so a hung request can never stall a state
// transition indefinitely.
package timeouts

import "time"

// Request caps a single HTTP round trip to the catalog API. Config may
// override it per process.
const Request = 10 * time.Second

// PageLoad caps a full page-change intent.
const PageLoad = 12 * time.Second

// Resolve caps a two-stage detail resolution: the primary entry plus every
// dependent fetch.
const Resolve = 30 * time.Second

// Storage caps reads and writes of the persisted favorites slot.
const Storage = 5 * time.Second
