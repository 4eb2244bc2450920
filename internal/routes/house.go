package routes

import (
	"github.com/gin-gonic/gin"

	"pantry/internal/handlers"
)

// HouseRoutes mounts houses and everything nested under a house.
type HouseRoutes struct {
	house        *handlers.HouseHandler
	storage      *handlers.StorageHandler
	stock        *handlers.StockHandler
	shoppingList *handlers.ShoppingListHandler
	guards       Guards
}

func NewHouseRoutes(h Handlers, guards Guards) *HouseRoutes {
	return &HouseRoutes{
		house:        h.House,
		storage:      h.Storage,
		stock:        h.Stock,
		shoppingList: h.ShoppingList,
		guards:       guards,
	}
}

func (r *HouseRoutes) RegisterRoutes(router *gin.RouterGroup) {
	houses := router.Group("/houses")
	houses.Use(r.guards.Authenticate)
	{
		houses.POST("", r.house.CreateHouse)
		houses.GET("", r.house.ListHouses)
		houses.GET("/:house_id", r.house.GetHouse)
		houses.PATCH("/:house_id", r.house.UpdateHouse)
		houses.DELETE("/:house_id", r.house.DeleteHouse)

		houses.GET("/:house_id/members", r.house.ListMembers)
		houses.POST("/:house_id/members", r.house.AddMember)
		houses.DELETE("/:house_id/members/:user_id", r.house.RemoveMember)
	}

	house := houses.Group("/:house_id")
	house.Use(r.guards.HouseMember)
	{
		house.GET("/storages", r.storage.ListStorages)
		house.POST("/storages", r.storage.CreateStorage)
		house.PUT("/storages/order", r.storage.ReorderStorages)
		house.PATCH("/storages/:storage_id", r.storage.UpdateStorage)
		house.DELETE("/storages/:storage_id", r.storage.DeleteStorage)
		house.POST("/storages/:storage_id/stock", r.stock.PutStock)

		house.GET("/stock", r.stock.ListStock)
		house.PATCH("/stock/:stock_id", r.stock.UpdateStock)
		house.DELETE("/stock/:stock_id", r.stock.DeleteStock)
		house.POST("/stock/:stock_id/adjust", r.stock.AdjustStock)

		list := house.Group("/shopping-list")
		list.GET("", r.shoppingList.ListItems)
		list.POST("", r.shoppingList.AddItem)
		list.PATCH("/items/:item_id", r.shoppingList.UpdateItem)
		list.DELETE("/items/:item_id", r.shoppingList.DeleteItem)
		list.PUT("/order", r.shoppingList.ReorderItems)
		list.POST("/clear-checked", r.shoppingList.ClearChecked)
		list.GET("/suggestions", r.shoppingList.Suggestions)
		list.POST("/suggestions/accept", r.shoppingList.AcceptSuggestions)
	}
}
