package http

import (
	"net/http"

	"campus-market/internal/entity"
	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubUseCase usecase.ClubUseCase
	logger      *logger.Logger
}

func NewClubHandler(clubUseCase usecase.ClubUseCase, logger *logger.Logger) *ClubHandler {
	return &ClubHandler{
		clubUseCase: clubUseCase,
		logger:      logger,
	}
}

type CreateClubRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Campus      string `json:"campus"`
}

// CreateClub godoc
// @Summary      Create club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateClubRequest true "Club data"
// @Success      201  {object}  entity.Club
// @Router       /clubs [post]
func (h *ClubHandler) CreateClub(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubUseCase.CreateClub(&entity.Club{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Campus:      req.Campus,
	})
	if err != nil {
		h.logger.Error("Failed to create club: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create club"})
		return
	}

	c.JSON(http.StatusCreated, club)
}

// GetClub godoc
// @Summary      Get club
// @Tags         clubs
// @Produce      json
// @Param        id path string true "Club ID"
// @Success      200  {object}  entity.Club
// @Router       /clubs/{id} [get]
func (h *ClubHandler) GetClub(c *gin.Context) {
	club, err := h.clubUseCase.GetClub(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	c.JSON(http.StatusOK, club)
}

// ListClubs godoc
// @Summary      Browse clubs
// @Tags         clubs
// @Produce      json
// @Param        campus query string false "Campus filter"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /clubs [get]
func (h *ClubHandler) ListClubs(c *gin.Context) {
	limit, offset := paginationParams(c)

	clubs, err := h.clubUseCase.ListClubs(c.Query("campus"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list clubs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clubs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs, "count": len(clubs)})
}

type UpdateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateClub godoc
// @Summary      Update club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Club ID"
// @Param        request body UpdateClubRequest true "Club fields"
// @Success      200  {object}  entity.Club
// @Router       /clubs/{id} [put]
func (h *ClubHandler) UpdateClub(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubUseCase.UpdateClub(userID, &entity.Club{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if err.Error() == "not the owner of this club" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update club: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update club"})
		return
	}

	c.JSON(http.StatusOK, club)
}

// DeleteClub godoc
// @Summary      Delete club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Club ID"
// @Success      200  {object}  map[string]string
// @Router       /clubs/{id} [delete]
func (h *ClubHandler) DeleteClub(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.clubUseCase.DeleteClub(userID, c.Param("id")); err != nil {
		if err.Error() == "not the owner of this club" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete club: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted"})
}

// JoinClub godoc
// @Summary      Join club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Club ID"
// @Success      200  {object}  map[string]string
// @Router       /clubs/{id}/join [post]
func (h *ClubHandler) JoinClub(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.clubUseCase.JoinClub(c.Param("id"), userID); err != nil {
		if err.Error() == "already a member" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to join club: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined club"})
}

// LeaveClub godoc
// @Summary      Leave club
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Club ID"
// @Success      200  {object}  map[string]string
// @Router       /clubs/{id}/leave [post]
func (h *ClubHandler) LeaveClub(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.clubUseCase.LeaveClub(c.Param("id"), userID); err != nil {
		if err.Error() == "owner cannot leave their own club" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to leave club: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left club"})
}

// GetMembers godoc
// @Summary      List club members
// @Tags         clubs
// @Produce      json
// @Param        id path string true "Club ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /clubs/{id}/members [get]
func (h *ClubHandler) GetMembers(c *gin.Context) {
	members, err := h.clubUseCase.GetMembers(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get members: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
}
