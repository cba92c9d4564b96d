package get_floor_layout

// SlotLocation результат поиска слота по идентификатору.
// Found=false означает, что слот не найден ни на одном этаже и Label - сокращенный идентификатор
type SlotLocation struct {
	SlotID       string
	Label        string
	Found        bool
	ParkingLotID string
	FloorID      string
	FloorNo      int
}
