/*
Package ports defines the driven ports (interfaces) of the page editor.

The editing core never performs I/O. These interfaces describe what the surrounding
adapters provide: somewhere to keep documents between requests, a way to serialize
access across replicas, and read-only renderers of a finished document.

# Key Interfaces

  - SiteStore: persists site documents keyed by session id.
  - DistributedLocker: provides distributed locking for concurrent session access.
  - Exporter: walks a document read-only to produce an artifact.
*/
package ports
