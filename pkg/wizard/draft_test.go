package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/laundryhub/pkg/catalog"
)

func TestNewDraftStartsIncomplete(t *testing.T) {
	d := NewDraft("cust-1")

	assert.NotEmpty(t, d.ID)
	assert.False(t, d.Complete())
	assert.Equal(t, []Step{StepService, StepItems, StepAddress, StepSchedule}, d.MissingSteps())
}

func TestMissingStepsShrinkAsStepsFill(t *testing.T) {
	d := NewDraft("cust-1")
	d.ServiceID = "wash-iron"

	shirt, ok := catalog.ItemByID("shirt")
	require.True(t, ok)
	require.NoError(t, d.Cart.SetQuantity(shirt, 1))

	assert.Equal(t, []Step{StepAddress, StepSchedule}, d.MissingSteps())

	d.Address = &Address{Street: "Keizersgracht 1", City: "Amsterdam", PostalCode: "1015 CN"}
	pickup := time.Now().Add(24 * time.Hour)
	d.Schedule = &Schedule{PickupAt: pickup, DeliveryAt: pickup.Add(48 * time.Hour)}

	assert.Empty(t, d.MissingSteps())
	assert.True(t, d.Complete())
}

func TestPartialAddressStaysMissing(t *testing.T) {
	d := NewDraft("cust-1")
	d.Address = &Address{Street: "Keizersgracht 1"}

	assert.Contains(t, d.MissingSteps(), StepAddress)
}

func TestScheduleValidate(t *testing.T) {
	pickup := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, Schedule{}.Validate(), ErrScheduleIncomplete)
	assert.ErrorIs(t, Schedule{PickupAt: pickup}.Validate(), ErrScheduleIncomplete)

	equal := Schedule{PickupAt: pickup, DeliveryAt: pickup}
	assert.ErrorIs(t, equal.Validate(), ErrDeliveryBeforePickup)

	before := Schedule{PickupAt: pickup, DeliveryAt: pickup.Add(-time.Hour)}
	assert.ErrorIs(t, before.Validate(), ErrDeliveryBeforePickup)

	ok := Schedule{PickupAt: pickup, DeliveryAt: pickup.Add(48 * time.Hour)}
	assert.NoError(t, ok.Validate())
}

func TestInvalidScheduleBlocksCompletion(t *testing.T) {
	d := NewDraft("cust-1")
	pickup := time.Now().Add(24 * time.Hour)
	d.Schedule = &Schedule{PickupAt: pickup, DeliveryAt: pickup.Add(-time.Hour)}

	assert.Contains(t, d.MissingSteps(), StepSchedule)
}
