// Package recon implements the diesel-generator run-hour reconciliation
// pipeline: it normalizes uploaded alarm and refuelling-reference tables,
// restricts alarms to each site's refuelling window, classifies them as
// mains-failure or generator-running, aggregates durations per site and
// derives the comparison metrics and fleet KPIs used for run-hour
// verification.
package recon
