package scheduler

const (
	// Days is the number of teaching days per week (Monday to Friday)
	Days = 5

	// TimesPerDay is the number of one-hour periods per day (9AM to 2PM)
	TimesPerDay = 6

	// MorningSlotCount is how many of the first periods of a day count as morning (9AM-11AM)
	MorningSlotCount = 3
)

// DayNames maps day indices to display names
var DayNames = [Days]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeLabels maps time indices to display labels
var TimeLabels = [TimesPerDay]string{"9AM", "10AM", "11AM", "12PM", "1PM", "2PM"}

// DefaultRooms is the room set used when no rooms are supplied
func DefaultRooms() []Room {
	return []Room{
		{Name: "Classroom1"},
		{Name: "Classroom2"},
		{Name: "Classroom3"},
		{Name: "Lab1", IsLab: true},
		{Name: "Lab2", IsLab: true},
	}
}

// Grid is the immutable (day, time, room) coordinate space of a run
type Grid struct {
	rooms  []Room
	byName map[string]Room
}

// NewGrid builds a grid over the given rooms. Duplicate room names keep the first entry.
func NewGrid(rooms []Room) *Grid {
	g := &Grid{
		rooms:  make([]Room, 0, len(rooms)),
		byName: make(map[string]Room, len(rooms)),
	}
	for _, room := range rooms {
		if _, exists := g.byName[room.Name]; exists {
			continue
		}
		g.byName[room.Name] = room
		g.rooms = append(g.rooms, room)
	}
	return g
}

// Rooms returns a copy of the grid's rooms in input order
func (g *Grid) Rooms() []Room {
	return append([]Room(nil), g.rooms...)
}

// RoomCount returns the number of distinct rooms
func (g *Grid) RoomCount() int {
	return len(g.rooms)
}

// Capacity returns the total number of (day, time, room) slots
func (g *Grid) Capacity() int {
	return Days * TimesPerDay * len(g.rooms)
}

// Contains reports whether the slot lies inside the grid
func (g *Grid) Contains(slot Slot) bool {
	if slot.Day < 0 || slot.Day >= Days || slot.Time < 0 || slot.Time >= TimesPerDay {
		return false
	}
	_, ok := g.byName[slot.Room]
	return ok
}

// IsLabRoom reports whether the named room is lab-capable
func (g *Grid) IsLabRoom(name string) bool {
	return g.byName[name].IsLab
}

// Slots enumerates every slot, day-major then time then room (input order)
func (g *Grid) Slots() []Slot {
	slots := make([]Slot, 0, g.Capacity())
	for day := 0; day < Days; day++ {
		for time := 0; time < TimesPerDay; time++ {
			for _, room := range g.rooms {
				slots = append(slots, Slot{Day: day, Time: time, Room: room.Name})
			}
		}
	}
	return slots
}

// IsMorning returns true if the time index falls in the morning block
func IsMorning(time int) bool {
	return time >= 0 && time < MorningSlotCount
}
