package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/response"
)

// ListUsers godoc
// GET /api/users?search=
func (s *Server) ListUsers(c *gin.Context) {
	response.Success(c, http.StatusOK, s.store.Users(c.Query("search")))
}

// GetUser godoc
// GET /api/users/:id
func (s *Server) GetUser(c *gin.Context) {
	user, ok := s.store.GetUser(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateUser godoc
// PUT /api/users/:id
// Applies a partial update; absent fields keep their stored values.
func (s *Server) UpdateUser(c *gin.Context) {
	user, ok := s.store.GetUser(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	applyPatch(&user, patch)
	response.Success(c, http.StatusOK, s.store.UpsertUser(user))
}

// DeleteUser godoc
// DELETE /api/users/:id
func (s *Server) DeleteUser(c *gin.Context) {
	if !s.store.DeleteUser(c.Param("id")) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func applyPatch(user *model.User, patch model.UserPatch) {
	if patch.UserName != nil {
		user.UserName = *patch.UserName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Gender != nil {
		user.Gender = *patch.Gender
	}
	if patch.Occupation != nil {
		user.Occupation = *patch.Occupation
	}
	if patch.Nickname != nil {
		user.Nickname = *patch.Nickname
	}
	if patch.BirthDate != nil {
		user.BirthDate = *patch.BirthDate
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
}
