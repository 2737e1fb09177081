// Package archive contains durable core.ChainArchiver implementations. The
// engine's in-memory chains stay authoritative; an archiver is an append-only
// audit sink that survives the process and can be re-verified out of band.
package archive
