package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JerishBovas/ScavengerHunt-API/middleware"
	"github.com/JerishBovas/ScavengerHunt-API/models"
	"github.com/JerishBovas/ScavengerHunt-API/services"
	"github.com/JerishBovas/ScavengerHunt-API/utils"
)

// @Summary Health probe
// @Tags meta
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /api/v1/ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary List public games
// @Description Returns the summary projection of every public game; private games are never listed
// @Tags games
// @Produce json
// @Success 200 {array} models.GameSummary
// @Router /api/v1/games [get]
// @Security ApiKeyAuth
func ListGames(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := svc.List()
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, games)
	}
}

// @Summary Get a game
// @Description Returns the full detail of a game, items included
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} models.GameDetail
// @Failure 404 {object} utils.RequestError
// @Router /api/v1/games/{id} [get]
// @Security ApiKeyAuth
func GetGame(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.AbortWithError(c, utils.NewNotFoundError("Requested game not found"))
			return
		}
		game, err := svc.Get(id)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, game)
	}
}

// @Summary Create a game
// @Description Creates a game owned by the calling user and returns its id
// @Tags games
// @Accept json
// @Produce json
// @Param game body models.GameUpsert true "Game payload"
// @Success 201 {object} object{id=string}
// @Failure 400 {object} utils.RequestError
// @Failure 404 {object} utils.RequestError
// @Router /api/v1/games [post]
// @Security ApiKeyAuth
func CreateGame(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GameUpsert
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.AbortWithError(c, utils.BindingError(err))
			return
		}
		id, err := svc.Create(middleware.PrincipalEmail(c), &req)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// @Summary Update a game
// @Description Replaces every mutable field of a game owned by the calling user
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param game body models.GameUpsert true "Game payload"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} utils.RequestError
// @Failure 404 {object} utils.RequestError
// @Router /api/v1/games/{id} [put]
// @Security ApiKeyAuth
func UpdateGame(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.AbortWithError(c, utils.NewNotFoundError("Game not found"))
			return
		}
		var req models.GameUpsert
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.AbortWithError(c, utils.BindingError(err))
			return
		}
		if err := svc.Update(middleware.PrincipalEmail(c), id, &req); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully"})
	}
}

// @Summary Upload an image
// @Description Stores an image and returns its content URL; linking it to a game is a separate update
// @Tags games
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} object{imagePath=string}
// @Failure 400 {object} utils.RequestError
// @Failure 404 {object} utils.RequestError
// @Failure 502 {object} utils.RequestError
// @Router /api/v1/games/image [put]
// @Security ApiKeyAuth
func UploadGameImage(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("image")
		if err != nil {
			utils.AbortWithError(c, utils.NewValidationError("image file is required"))
			return
		}
		file, err := header.Open()
		if err != nil {
			utils.AbortWithError(c, utils.NewValidationError("image file could not be read"))
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			utils.AbortWithError(c, utils.NewValidationError("image file could not be read"))
			return
		}

		url, err := svc.SaveImage(middleware.PrincipalEmail(c), data, header.Filename)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imagePath": url})
	}
}

// @Summary Delete a game
// @Description Deletes a game owned by the calling user; its items go with it
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} utils.RequestError
// @Failure 404 {object} utils.RequestError
// @Router /api/v1/games/{id} [delete]
// @Security ApiKeyAuth
func DeleteGame(svc *services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.AbortWithError(c, utils.NewBadRequestError("Game with provided ID not found."))
			return
		}
		if err := svc.Delete(middleware.PrincipalEmail(c), id); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
	}
}
