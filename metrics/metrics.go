// Package metrics provides metrics-related utilities.
// Defined metrics:
//
//	blueprint.loads (counter)
//	validator.verified (counter)
//	validator.applied (counter)
//	validator.failures.KIND (counter)
package metrics

import (
	"time"

	"github.com/codahale/metrics"
)

// BlueprintLoaded counts one successful blueprint load.
func BlueprintLoaded() {
	metrics.Counter("blueprint.loads").Add()
}

// ValidatorVerified counts one validator whose declared hash
// matched its recomputed hash.
func ValidatorVerified() {
	metrics.Counter("validator.verified").Add()
}

// ValidatorApplied counts one successful parameter application.
func ValidatorApplied() {
	metrics.Counter("validator.applied").Add()
}

// ValidatorFailed counts one per-validator failure, bucketed by
// the root error kind.
func ValidatorFailed(kind string) {
	metrics.Counter("validator.failures." + kind).Add()
}

// RecordElapsed records the time since t0 in the
// validator.pipeline.ms gauge.
func RecordElapsed(t0 time.Time) {
	metrics.Gauge("validator.pipeline.ms").Set(int64(time.Since(t0) / time.Millisecond))
}
