// Package core provides the record management and persistence layer of the shop.
//
// This package holds all domain logic independent of the console menu. It
// can be driven by the console, by other front ends, or by tests without
// modification.
//
// # Records
//
//   - Catalog: ordered products, loaded from and saved to a CSV file.
//   - CredentialStore: append-only username,password text file.
//   - Cart: per-customer pending selection, drained by Checkout.
//   - OrderLedger: orders placed during this process, optionally mirrored
//     to an append-only order log.
//
// # Application State
//
// [App] threads every piece of state explicitly: catalog, ledger,
// credential store, order log and the active [Session]. A session holds at
// most one [Admin] and at most one [Customer] at a time.
//
// # File Formats
//
// Catalog CSV, one product per line, no header and no quoting:
//
//	Laptop,1200.5,10
//
// Credentials, one account per line, split on the first comma:
//
//	alice,s3cret
//
// Order log, one block per order:
//
//	Order for alice:
//	- Laptop
//	- Phone
//
// # Error Handling
//
// Every failure wraps one of the sentinel errors in errors.go so callers can
// test it with errors.Is. [MapError] and [FormatUserError] turn those into
// user-facing messages with a support code; none of them are fatal.
package core
