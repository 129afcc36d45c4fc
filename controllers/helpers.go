package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// bindBody decodes the JSON body into dst. An empty body leaves dst untouched
// so the validators report the missing data envelope; unparseable JSON is
// reported the same way.
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, utils.BadRequest("body must have data property"))
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
