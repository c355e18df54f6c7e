package services

import (
	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"gorm.io/gorm"
)

// RoleService resolves a user's privilege tier from the profile row. There
// is no caching: every predicate re-reads the store, so a role change takes
// effect on the next request.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// ResolveRole returns the stored role for userID. A missing profile, a read
// error or an empty/unknown role all degrade to RoleUser: absence of
// evidence of privilege is treated as absence of privilege.
func (s *RoleService) ResolveRole(userID uint) string {
	var user models.User
	if err := s.db.Select("role").First(&user, userID).Error; err != nil {
		return models.RoleUser
	}

	switch user.Role {
	case models.RoleOwner, models.RoleAdmin, models.RoleModerator:
		return user.Role
	}
	return models.RoleUser
}

func (s *RoleService) IsAdmin(userID uint) bool {
	role := s.ResolveRole(userID)
	return role == models.RoleOwner || role == models.RoleAdmin
}

func (s *RoleService) IsOwner(userID uint) bool {
	return s.ResolveRole(userID) == models.RoleOwner
}

func (s *RoleService) HasModerationRights(userID uint) bool {
	role := s.ResolveRole(userID)
	return role == models.RoleOwner || role == models.RoleAdmin || role == models.RoleModerator
}
