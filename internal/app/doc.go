// Package app holds the application service that orchestrates credential
// verification, registration, and statistics over the domain repositories.
package app
