package rooms

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/srgjo27/club_membership/internal/core/domain"
)

//go:embed rooms.yaml
var defaultInventory []byte

// Load reads the room inventory from path, or the embedded default catalog
// when path is empty.
func Load(path string) (*domain.RoomInventory, error) {
	data := defaultInventory
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rooms file: %w", err)
		}
		data = b
	}

	var inv domain.RoomInventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse rooms file: %w", err)
	}
	if len(inv.Buildings) == 0 {
		return nil, fmt.Errorf("room inventory is empty")
	}

	return &inv, nil
}
