package handler

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(bookings *BookingHandler, memberships *MembershipHandler, transactions *TransactionHandler, catalog *CatalogHandler) *gin.Engine {
	r := gin.Default()

	v1 := r.Group("/v1")
	{
		v1.POST("/bookings", bookings.Create)
		v1.GET("/bookings", bookings.List)
		v1.GET("/bookings/:id", bookings.Get)
		v1.POST("/bookings/:id/confirm", bookings.Confirm)
		v1.POST("/bookings/:id/reject", bookings.Reject)
		v1.POST("/bookings/:id/checkout", bookings.CheckOut)
		v1.PATCH("/bookings/:id", bookings.Edit)
		v1.DELETE("/bookings/:id", bookings.Delete)

		v1.POST("/transactions", transactions.Post)
		v1.GET("/transactions", transactions.List)

		v1.POST("/memberships", memberships.Enroll)
		v1.GET("/memberships", memberships.List)
		v1.GET("/memberships/:id", memberships.Get)
		v1.PATCH("/memberships/:id", memberships.Update)
		v1.DELETE("/memberships/:id", memberships.Delete)

		v1.GET("/services", catalog.ListServices)
		v1.GET("/rooms/buildings", catalog.ListBuildings)
		v1.GET("/rooms/floors", catalog.ListFloors)
		v1.GET("/rooms/types", catalog.ListRoomTypes)
		v1.GET("/rooms/numbers", catalog.ListRoomNumbers)
	}

	return r
}
