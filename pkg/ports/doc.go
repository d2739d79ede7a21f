/*
Package ports defines the driven ports (interfaces) for formcheck.

These interfaces decouple schema loading from storage backends, so the
same registry can be fed from a directory, Redis or memory.

# Key Interfaces

  - DocumentStore: persists raw schema documents by name.

RunDocumentStoreContract verifies an implementation against the interface
contract and is shared by every adapter's tests.
*/
package ports
