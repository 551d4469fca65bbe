// Package domain defines the core model types, repository contracts, and
// sentinel errors shared across the application.
//
// Status constants mirror the Spanish enum values stored in the database so
// that repository code and API payloads agree on a single vocabulary.
package domain
