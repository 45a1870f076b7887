package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
	"github.com/lukusafi/laundry-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// actorID returns the caller's id, or uuid.Nil outside an authenticated route
func actorID(c *gin.Context) uuid.UUID {
	if id := GetUserID(c); id != nil {
		return *id
	}
	return uuid.Nil
}

// paramID parses the named path parameter as a UUID, writing a 400 on failure
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams binds page and limit from the query string
func pageParams(c *gin.Context) *pagination.Params {
	params := pagination.Default()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}
