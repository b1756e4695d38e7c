// Package corpus owns the quote corpus the matcher draws from.
//
// An Entry is one short quotation: a stable identifier, the quoted text, and
// an opaque audio locator that downstream alignment resolves. Entries reach
// the matcher through the Provider interface, implemented here by the SQLite
// Store and by JSONFile (the quotes cache format written by the scraper).
//
// Admit applies the provider-side admission rules before matching: entries
// whose text normalizes to nothing are dropped, as are entries whose audio
// URL carries an excluded keyword (the scraper tags localized clips that way).
//
// The Store is the long-lived home for a corpus. Imports upsert by ID under
// an exclusive file lock so concurrent CLI invocations cannot interleave
// writes; schema changes bump schemaVersion and require clearing the database.
package corpus
