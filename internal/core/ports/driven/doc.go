// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SearchEngine: BM25 keyword retrieval over the product index
//   - IndexBuilder: Index construction from the catalogue corpus
//   - ReviewStore: Review lookup by product ID
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model completion. Without it, answer
//     synthesis, relevance filtering and review summaries are disabled;
//     keyword retrieval keeps working.
//   - PromptStore: User-editable prompt templates. Without it, the
//     embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
