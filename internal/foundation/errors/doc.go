// Package errors provides the classified error primitives used across journal.
//
// Two failure kinds matter when loading a site configuration:
//   - schema violations (CategoryConfig): the document has the wrong shape or names an
//     extension, theme, language or locale that cannot be resolved. Always fatal.
//   - reference errors (CategoryReference): a link, doc id or asset cannot be found. The
//     severity follows the configured broken-link policy.
//
// Example usage:
//
//	err := errors.SchemaViolation("baseUrl must start and end with '/'").
//		WithContext("field", "baseUrl").
//		WithContext("value", cfg.BaseURL).
//		Build()
package errors
