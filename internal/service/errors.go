package service

import (
	"errors"

	"github.com/anyulbade/merchant-dashboard-api/internal/repository"
)

var (
	ErrUpstream     = repository.ErrUpstream
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
)
