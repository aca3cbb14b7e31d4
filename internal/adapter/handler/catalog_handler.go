package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
)

// CatalogHandler serves the read-only service catalog and the room
// selection cascade.
type CatalogHandler struct {
	services  ports.ServiceRepository
	inventory *domain.RoomInventory
}

func NewCatalogHandler(services ports.ServiceRepository, inventory *domain.RoomInventory) *CatalogHandler {
	return &CatalogHandler{services: services, inventory: inventory}
}

// GET /v1/services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GET /v1/rooms/buildings
func (h *CatalogHandler) ListBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventory.ListBuildings())
}

// GET /v1/rooms/floors?building=
func (h *CatalogHandler) ListFloors(c *gin.Context) {
	floors, err := h.inventory.ListFloors(c.Query("building"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, floors)
}

// GET /v1/rooms/types?building=&floor=
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	types, err := h.inventory.ListRoomTypes(c.Query("building"), c.Query("floor"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /v1/rooms/numbers?building=&floor=&type=
func (h *CatalogHandler) ListRoomNumbers(c *gin.Context) {
	numbers, err := h.inventory.ListRoomNumbers(c.Query("building"), c.Query("floor"), c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, numbers)
}
