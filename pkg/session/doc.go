/*
Package session implements session management and persistence orchestration.

A Manager owns the live editing sessions of a process. It serializes access per session id
(optionally across replicas through a DistributedLocker), lazily opens documents from a
SiteStore, and writes a document back whenever an operation replaced it.
*/
package session
