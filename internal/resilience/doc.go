// Package resilience holds the fault tolerance building blocks: circuit
// breakers around the vision and suggestion APIs, and retry with
// exponential backoff for similarity searches and database reads.
package resilience
