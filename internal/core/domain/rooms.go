package domain

import (
	"fmt"
	"strings"
)

// RoomInventory is the fixed catalog of bookable rooms, ordered
// building -> floor -> room type -> room numbers. It is read-only after
// startup; the engine only traverses and validates it.
type RoomInventory struct {
	Buildings []RoomBuilding `yaml:"buildings"`
}

type RoomBuilding struct {
	ID     string      `yaml:"id"`
	Floors []RoomFloor `yaml:"floors"`
}

type RoomFloor struct {
	ID    string         `yaml:"id"`
	Types []RoomTypeList `yaml:"room_types"`
}

type RoomTypeList struct {
	ID      string   `yaml:"id"`
	Numbers []string `yaml:"rooms"`
}

func (inv *RoomInventory) building(id string) *RoomBuilding {
	for i := range inv.Buildings {
		if inv.Buildings[i].ID == id {
			return &inv.Buildings[i]
		}
	}
	return nil
}

func (b *RoomBuilding) floor(id string) *RoomFloor {
	for i := range b.Floors {
		if b.Floors[i].ID == id {
			return &b.Floors[i]
		}
	}
	return nil
}

func (f *RoomFloor) roomType(id string) *RoomTypeList {
	for i := range f.Types {
		if f.Types[i].ID == id {
			return &f.Types[i]
		}
	}
	return nil
}

func (inv *RoomInventory) ListBuildings() []string {
	ids := make([]string, 0, len(inv.Buildings))
	for _, b := range inv.Buildings {
		ids = append(ids, b.ID)
	}
	return ids
}

func (inv *RoomInventory) ListFloors(building string) ([]string, error) {
	b := inv.building(building)
	if b == nil {
		return nil, fmt.Errorf("building %q: %w", building, ErrNotFound)
	}
	ids := make([]string, 0, len(b.Floors))
	for _, f := range b.Floors {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

func (inv *RoomInventory) ListRoomTypes(building, floor string) ([]string, error) {
	b := inv.building(building)
	if b == nil {
		return nil, fmt.Errorf("building %q: %w", building, ErrNotFound)
	}
	f := b.floor(floor)
	if f == nil {
		return nil, fmt.Errorf("floor %q: %w", floor, ErrNotFound)
	}
	ids := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (inv *RoomInventory) ListRoomNumbers(building, floor, roomType string) ([]string, error) {
	b := inv.building(building)
	if b == nil {
		return nil, fmt.Errorf("building %q: %w", building, ErrNotFound)
	}
	f := b.floor(floor)
	if f == nil {
		return nil, fmt.Errorf("floor %q: %w", floor, ErrNotFound)
	}
	t := f.roomType(roomType)
	if t == nil {
		return nil, fmt.Errorf("room type %q: %w", roomType, ErrNotFound)
	}
	return append([]string(nil), t.Numbers...), nil
}

// RoomSelection narrows the inventory down to one concrete room. Selections
// cascade strictly top-down: choosing a level clears everything below it.
type RoomSelection struct {
	Building   string
	Floor      string
	RoomType   string
	RoomNumber string
}

func (s *RoomSelection) SelectBuilding(inv *RoomInventory, building string) error {
	if inv.building(building) == nil {
		return fmt.Errorf("building %q: %w", building, ErrNotFound)
	}
	s.Building = building
	s.Floor = ""
	s.RoomType = ""
	s.RoomNumber = ""
	return nil
}

func (s *RoomSelection) SelectFloor(inv *RoomInventory, floor string) error {
	b := inv.building(s.Building)
	if b == nil {
		return fmt.Errorf("building %q: %w", s.Building, ErrNotFound)
	}
	if b.floor(floor) == nil {
		return fmt.Errorf("floor %q: %w", floor, ErrNotFound)
	}
	s.Floor = floor
	s.RoomType = ""
	s.RoomNumber = ""
	return nil
}

func (s *RoomSelection) SelectRoomType(inv *RoomInventory, roomType string) error {
	b := inv.building(s.Building)
	if b == nil {
		return fmt.Errorf("building %q: %w", s.Building, ErrNotFound)
	}
	f := b.floor(s.Floor)
	if f == nil {
		return fmt.Errorf("floor %q: %w", s.Floor, ErrNotFound)
	}
	if f.roomType(roomType) == nil {
		return fmt.Errorf("room type %q: %w", roomType, ErrNotFound)
	}
	s.RoomType = roomType
	s.RoomNumber = ""
	return nil
}

func (s *RoomSelection) SelectRoomNumber(inv *RoomInventory, number string) error {
	numbers, err := inv.ListRoomNumbers(s.Building, s.Floor, s.RoomType)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		if n == number {
			s.RoomNumber = number
			return nil
		}
	}
	return fmt.Errorf("room %q: %w", number, ErrNotFound)
}

func (s *RoomSelection) Complete() bool {
	return s.Building != "" && s.Floor != "" && s.RoomType != "" && s.RoomNumber != ""
}

// RoomID is the composite reference string for a fully resolved selection,
// e.g. SPORTI-1-GROUND-FLOOR-102. Empty until the selection is complete.
func (s *RoomSelection) RoomID() string {
	if !s.Complete() {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", s.Building, strings.Replace(s.Floor, " ", "-", 1), s.RoomNumber)
}
