package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// CreateTable -> POST /tables
func (tc *TableController) CreateTable(c *gin.Context) {
	var req validators.TableRequest
	if !bindBody(c, &req) {
		return
	}

	table, err := tc.Tables.Create(c.Request.Context(), &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableName, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, table)
}

// GetAllTables -> GET /tables, ordered by name
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

// GetTableByID -> GET /tables/:table_id
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := tc.tableID(c)
	if !ok {
		return
	}

	table, err := tc.Tables.Read(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// SeatTable -> PUT /tables/:table_id/seat
func (tc *TableController) SeatTable(c *gin.Context) {
	id, ok := tc.tableID(c)
	if !ok {
		return
	}

	var req validators.SeatRequest
	if !bindBody(c, &req) {
		return
	}

	table, err := tc.Tables.Seat(c.Request.Context(), id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

// FinishTable -> DELETE /tables/:table_id/seat
func (tc *TableController) FinishTable(c *gin.Context) {
	id, ok := tc.tableID(c)
	if !ok {
		return
	}

	table, err := tc.Tables.Finish(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) tableID(c *gin.Context) (uint, bool) {
	id, ok := paramID(c, "table_id")
	if !ok {
		utils.RespondError(c, utils.NotFound("Table %s does not exist", c.Param("table_id")))
	}
	return id, ok
}
