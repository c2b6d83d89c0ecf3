// Package service contains the use cases behind the HTTP endpoints. It
// coordinates domain objects, the group store and the language model
// generator, and owns transaction boundaries.
//
// Key components:
//
// 1. StudyService:
//   - Builds summary and quiz prompts from validated options
//   - Calls the JSONGenerator once per request and checks the JSON shape
//
// 2. GroupService:
//   - Creates, searches and lists study groups
//   - Enforces membership rules (only members read details, join is idempotent)
//   - Runs group creation in a single transaction
//
// 3. Error Handling:
//   - Returns sentinels from domain, store, generation and this package so the
//     API layer can map them to wire codes with errors.Is
//
// Services depend on the store and generation interfaces, never on Postgres
// or Gemini directly.
package service
