package domain

// LabeledSlot слот с человекочитаемым номером
type LabeledSlot struct {
	Slot
	Label string
}

// SlotGroup слоты одного типа в порядке бэкенда.
// Слоты неизвестных типов собраны в одну группу с пустым Type и кодом XX
type SlotGroup struct {
	Type      VehicleType
	Code      string
	Slots     []LabeledSlot
	Occupied  int
	Available int
}

// FloorLayout сетка слотов этажа
type FloorLayout struct {
	FloorID      string
	FloorNo      int
	ParkingLotID string
	Groups       []SlotGroup
	Total        int
	Occupied     int
	Available    int
}

// BuildFloorLayout группирует слоты по типу (TW, FW, HV, затем неизвестные) и нумерует их.
// Номер зависит только от позиции слота среди слотов того же типа
func BuildFloorLayout(floor *Floor) *FloorLayout {
	layout := &FloorLayout{
		FloorID:      floor.ID,
		FloorNo:      floor.FloorNo,
		ParkingLotID: floor.ParkingLotID,
	}

	byType := make(map[VehicleType][]Slot, len(VehicleTypes))
	var unknown []Slot
	for _, s := range floor.Slots {
		if s.Type.IsValid() {
			byType[s.Type] = append(byType[s.Type], s)
		} else {
			unknown = append(unknown, s)
		}
	}

	for _, t := range VehicleTypes {
		if slots := byType[t]; len(slots) > 0 {
			layout.addGroup(t, slots)
		}
	}
	if len(unknown) > 0 {
		layout.addGroup("", unknown)
	}

	return layout
}

func (l *FloorLayout) addGroup(t VehicleType, slots []Slot) {
	group := SlotGroup{
		Type:  t,
		Code:  SlotTypeCode(t),
		Slots: make([]LabeledSlot, 0, len(slots)),
	}
	for i, s := range slots {
		group.Slots = append(group.Slots, LabeledSlot{
			Slot:  s,
			Label: SlotLabel(t, i, l.FloorNo),
		})
		if s.IsOccupied() {
			group.Occupied++
		} else {
			group.Available++
		}
	}

	l.Groups = append(l.Groups, group)
	l.Total += len(slots)
	l.Occupied += group.Occupied
	l.Available += group.Available
}

// Find ищет слот по идентификатору
func (l *FloorLayout) Find(slotID string) (*LabeledSlot, bool) {
	for gi := range l.Groups {
		for si := range l.Groups[gi].Slots {
			if l.Groups[gi].Slots[si].ID == slotID {
				return &l.Groups[gi].Slots[si], true
			}
		}
	}
	return nil, false
}

// ShortSlotID сокращенный идентификатор слота, если номер определить не удалось
func ShortSlotID(slotID string) string {
	r := []rune(slotID)
	if len(r) <= 8 {
		return slotID
	}
	return string(r[:8])
}
