// Package services implements the business logic layer between the HTTP
// handlers and the reconciliation pipeline. ReconService runs uploads
// through the pipeline and retains the latest result in memory for the
// download endpoints; HealthService reports process health. Services take
// their dependencies by injection and propagate context for cancellation
// and tracing.
package services
