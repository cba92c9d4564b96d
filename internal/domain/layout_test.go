package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFloorLayout(t *testing.T) {
	vehicle := "v-1"
	floor := &Floor{
		ID:      "f-1",
		FloorNo: 2,
		Slots: []Slot{
			{ID: "a", Type: VehicleFourWheeler, Status: SlotAvailable},
			{ID: "b", Type: VehicleTwoWheeler, Status: SlotOccupied, VehicleID: &vehicle},
			{ID: "c", Type: VehicleType("BUS"), Status: SlotAvailable},
			{ID: "d", Type: VehicleFourWheeler, Status: SlotOccupied},
			{ID: "e", Type: VehicleTwoWheeler, Status: SlotAvailable},
		},
	}

	layout := BuildFloorLayout(floor)
	require.Len(t, layout.Groups, 3)

	assert.Equal(t, VehicleTwoWheeler, layout.Groups[0].Type)
	assert.Equal(t, "SLOT-F2-TW-001", layout.Groups[0].Slots[0].Label)
	assert.Equal(t, "b", layout.Groups[0].Slots[0].ID)
	assert.Equal(t, "SLOT-F2-TW-002", layout.Groups[0].Slots[1].Label)

	assert.Equal(t, VehicleFourWheeler, layout.Groups[1].Type)
	assert.Equal(t, "SLOT-F2-FW-001", layout.Groups[1].Slots[0].Label)
	assert.Equal(t, "SLOT-F2-FW-002", layout.Groups[1].Slots[1].Label)
	assert.Equal(t, 1, layout.Groups[1].Occupied)

	assert.Equal(t, UnknownSlotTypeCode, layout.Groups[2].Code)
	assert.Equal(t, "SLOT-F2-XX-001", layout.Groups[2].Slots[0].Label)
	assert.Equal(t, VehicleType("BUS"), layout.Groups[2].Slots[0].Type)

	assert.Equal(t, 5, layout.Total)
	assert.Equal(t, 2, layout.Occupied)
	assert.Equal(t, 3, layout.Available)

	found, ok := layout.Find("d")
	require.True(t, ok)
	assert.Equal(t, "SLOT-F2-FW-002", found.Label)

	_, ok = layout.Find("zzz")
	assert.False(t, ok)
}

func TestBuildFloorLayout_Empty(t *testing.T) {
	layout := BuildFloorLayout(&Floor{FloorNo: 0})
	assert.Empty(t, layout.Groups)
	assert.Equal(t, 0, layout.Total)
}

func TestShortSlotID(t *testing.T) {
	assert.Equal(t, "3f2a9c1d", ShortSlotID("3f2a9c1d-7b4e-4d0a-9a51-0c1f6f7e2d11"))
	assert.Equal(t, "abc", ShortSlotID("abc"))
}
