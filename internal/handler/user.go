package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stock-quote-api/internal/config"
	"github.com/iliyamo/stock-quote-api/internal/repository"
	"github.com/iliyamo/stock-quote-api/internal/utils"
	"github.com/iliyamo/stock-quote-api/internal/validator"
)

// UserHandler implements the JWT-protected user CRUD endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserReq uses pointers so "field absent" and "field empty" are
// distinguishable; absent fields are left untouched.
type updateUserReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// GetAll returns every user.
func (h *UserHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	parts := make([]userPart, 0, len(users))
	for _, u := range users {
		parts = append(parts, toUserPart(u))
	}
	return respond(c, http.StatusOK, "Users retrieved successfully", parts)
}

// Create registers a new user.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if res := validator.UserForCreation(req.Email, req.Password); !res.OK {
		return fail(c, http.StatusBadRequest, res.Reason)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "hash password failed")
	}
	id, err := h.Users.Create(ctx, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "Email already in use")
		}
		return fail(c, http.StatusInternalServerError, "create user failed")
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "load user failed")
	}
	return respond(c, http.StatusCreated, "User created successfully", toUserPart(u))
}

// GetOne returns a single user by path id.
func (h *UserHandler) GetOne(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return respond(c, http.StatusOK, "User retrieved successfully", toUserPart(u))
}

// Update changes a user's email and/or password.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if res := validator.UserForUpdate(req.Email, req.Password); !res.OK {
		return fail(c, http.StatusBadRequest, res.Reason)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			if err := h.Users.UpdateEmail(ctx, id, email); err != nil {
				if errors.Is(err, repository.ErrEmailExists) {
					return fail(c, http.StatusBadRequest, "Email already in use")
				}
				return fail(c, http.StatusInternalServerError, "update user failed")
			}
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "hash password failed")
		}
		if err := h.Users.UpdatePassword(ctx, id, hash); err != nil {
			return fail(c, http.StatusInternalServerError, "update user failed")
		}
	}

	u, err = h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "load user failed")
	}
	return respond(c, http.StatusOK, "User updated successfully", toUserPart(u))
}

// Delete removes a user and, via FK cascade, their query history.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return fail(c, http.StatusInternalServerError, "delete user failed")
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// reqCtx bounds every DB call in a handler to five seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
