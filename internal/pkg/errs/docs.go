// Package errs provides the typed errors shared by the print-and-delivery core.
// Every error type follows the same shape so callers can classify failures with
// errors.Is against a sentinel and inspect details with errors.As.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed a business rule
//   - ValueIsOutOfRangeError: a numeric or ordered value is outside its bounds
//   - ObjectNotFoundError: a referenced order, location or session does not exist
//   - VersionIsInvalidError: a settings document declares an unsupported version
//
// Each error type provides:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type carrying the parameter name and optional cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
package errs
