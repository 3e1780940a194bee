package scheduling

import (
	"testing"

	"hoop_academy_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCoachEligibleFor(t *testing.T) {
	camp := strPtr(models.PackageCampTraining)
	personal := strPtr(models.PackagePersonalTraining)

	// Camp-specialized coaches run both package types.
	assert.True(t, CoachEligibleFor(camp, models.PackageCampTraining))
	assert.True(t, CoachEligibleFor(camp, models.PackagePersonalTraining))

	// Personal-training coaches are restricted to personal sessions.
	assert.True(t, CoachEligibleFor(personal, models.PackagePersonalTraining))
	assert.False(t, CoachEligibleFor(personal, models.PackageCampTraining))

	// No declared specialization means generalist.
	assert.True(t, CoachEligibleFor(nil, models.PackageCampTraining))
	assert.True(t, CoachEligibleFor(strPtr(""), models.PackagePersonalTraining))

	// Sessions without a package type accept anyone.
	assert.True(t, CoachEligibleFor(personal, ""))
}

func TestWithinAvailability(t *testing.T) {
	windows := []Interval{
		mustInterval(t, "09:00", "12:00"),
		mustInterval(t, "15:00", "18:00"),
	}

	assert.True(t, WithinAvailability(mustInterval(t, "09:00", "10:00"), windows))
	assert.True(t, WithinAvailability(mustInterval(t, "16:30", "18:00"), windows))
	assert.False(t, WithinAvailability(mustInterval(t, "11:30", "12:30"), windows))
	assert.False(t, WithinAvailability(mustInterval(t, "13:00", "14:00"), windows))

	// No declared windows: unrestricted.
	assert.True(t, WithinAvailability(mustInterval(t, "03:00", "04:00"), nil))
}
