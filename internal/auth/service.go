// Package auth issues and verifies admin session tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
	"github.com/ohmfruit/fruitstore-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Guard decides whether a bearer token belongs to an admin.
type Guard interface {
	Verify(ctx context.Context, token string) (utils.AdminClaims, error)
}

type Service interface {
	Guard
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Status(ctx context.Context, token string) dto.AuthStatusResponse
}

type ServiceImpl struct {
	config config.AuthConfig
}

func CreateAuthService(conf config.AuthConfig) Service {
	return &ServiceImpl{config: conf}
}

// Verify fails with ErrNotLoggedIn for a missing or unusable token and with
// ErrUnauthorized for a valid token without admin rights.
func (s *ServiceImpl) Verify(ctx context.Context, token string) (utils.AdminClaims, error) {
	if token == "" {
		return utils.AdminClaims{}, errs.ErrNotLoggedIn
	}

	claims, err := utils.ParseJWTToken(token, s.config.JWTSecret)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "Verify").Msg("rejected token")
		return utils.AdminClaims{}, fmt.Errorf("%w: %v", errs.ErrNotLoggedIn, err)
	}

	if !claims.IsAdmin {
		return claims, errs.ErrUnauthorized
	}

	return claims, nil
}

func (s *ServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (respPayload dto.LoginResponse, err error) {
	hash, ok := s.config.AdminUsers[payload.Username]
	if !ok || payload.Password == "" {
		return respPayload, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(payload.Password))
	if err != nil {
		log.Ctx(ctx).Info().Str("component", "Login").Str("username", payload.Username).Msg("wrong password")
		return respPayload, errs.ErrInvalidCredentials
	}

	token, err := utils.CreateJWTToken(payload.Username, true, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return respPayload, err
	}

	respPayload.Token = token
	return respPayload, nil
}

// Status never fails; anything but a valid admin token reads as not admin.
func (s *ServiceImpl) Status(ctx context.Context, token string) dto.AuthStatusResponse {
	_, err := s.Verify(ctx, token)
	return dto.AuthStatusResponse{IsAdmin: err == nil}
}
