// Package form implements the submission bridge: one Submit call runs local
// schema validation, short-circuits when invalid, otherwise performs a single
// server round trip and reconciles the outcome back into per-field error
// state and a busy flag. A Form owns its state exclusively and assumes at
// most one outstanding submission at a time; callers enforce that by
// disabling the submit control while IsSubmitting reports true.
package form
