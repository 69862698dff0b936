// Package diagnostic provides the structured side channel through which the
// lowering pass reports problems without aborting.
//
// Key capabilities:
//   - Ordered info/warning/error entries with a stable code per anomaly
//   - Entity locators (kind and name) for every entry
//   - Discarded alternatives for ambiguous resolutions
//   - Optional mirroring of every entry to a slog.Logger
package diagnostic
