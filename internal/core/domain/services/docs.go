// Package services contains stateless domain services implementing business
// logic that spans or sits outside a single aggregate.
//
// OrderNumberGenerator derives candidate order numbers from creation inputs.
// Candidates are deterministic in their prefix (doctor, patient, date) and
// carry a random suffix; uniqueness is only decided by the persistence layer,
// so creation code retries with a fresh candidate on collision.
package services
