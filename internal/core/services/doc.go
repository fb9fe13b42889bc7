// Package services implements the application's use cases on top of
// the driven ports: document ingestion (assemble, embed, index), the
// retrieve-then-generate query flow, and answer evaluation.
//
// Services hold no mutable state beyond their injected collaborators
// and are safe for concurrent use. Collaborator handles are expensive
// singletons owned by the caller (see the CLI's resource holder);
// services never construct adapters themselves.
package services
