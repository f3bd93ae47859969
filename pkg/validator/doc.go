// Package validator provides declarative validation rules for decoded
// request bodies. Rules address fields by dotted path, checks produce
// per-field failure messages, and the resulting failures fold into a
// field→messages map suitable as bad-request response metadata.
package validator
