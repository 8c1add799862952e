// Package validator checks survey input before compilation and compiled workflows after it.
//
// ValidateRequest guards the compiler's input boundary, Diagnose and ValidateWorkflow crawl
// the compiled graph, and DocumentValidator checks serialized documents against the
// workflow JSON Schema.
package validator
