package scheduling

import "hoop_academy_backend/internal/models"

// CoachEligibleFor decides whether a coach with the given specialization may
// run a session of the given package type. Camp-specialized coaches may run
// both package types, personal-training coaches only personal sessions, and a
// coach without a declared specialization is a generalist.
func CoachEligibleFor(coachPackage *string, sessionPackage string) bool {
	if sessionPackage == "" {
		return true
	}
	if coachPackage == nil || *coachPackage == "" {
		return true
	}
	switch *coachPackage {
	case models.PackageCampTraining:
		return true
	case models.PackagePersonalTraining:
		return sessionPackage == models.PackagePersonalTraining
	default:
		return false
	}
}

// WithinAvailability reports whether the interval fits entirely inside one of
// the coach's declared windows. A coach with no windows declared is treated as
// unrestricted.
func WithinAvailability(iv Interval, windows []Interval) bool {
	if len(windows) == 0 {
		return true
	}
	for _, w := range windows {
		if w.Start <= iv.Start && iv.End <= w.End {
			return true
		}
	}
	return false
}
