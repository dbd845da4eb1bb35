package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JerishBovas/ScavengerHunt-API/models"
	"github.com/JerishBovas/ScavengerHunt-API/models/postgres"
	"github.com/JerishBovas/ScavengerHunt-API/repositories"
	"github.com/JerishBovas/ScavengerHunt-API/services/blob"
	"github.com/JerishBovas/ScavengerHunt-API/services/redis"
	"github.com/JerishBovas/ScavengerHunt-API/utils"
)

/*
 * GameService orchestrates the Game aggregate lifecycle: ownership checks,
 * projections and one repository unit of work per request. It is the sole
 * writer of a game's ID, owner and timestamps.
 */
type GameService struct {
	DB    *gorm.DB
	Blobs blob.Store
	Cache *redis.RedisClient
	Log   *zap.Logger
}

func NewGameService(db *gorm.DB, blobs blob.Store, cache *redis.RedisClient, log *zap.Logger) *GameService {
	return &GameService{DB: db, Blobs: blobs, Cache: cache, Log: log}
}

// resolveUser maps the session principal to an account. A principal without
// an account is reported exactly like a missing resource.
func (s *GameService) resolveUser(email string) (*postgres.User, error) {
	var user postgres.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("User does not exist")
	}
	if err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}
	return &user, nil
}

// List returns the summary projection of every public game. Private games
// never appear here; an empty catalogue is an empty list, not an error.
func (s *GameService) List() ([]models.GameSummary, error) {
	if s.Cache != nil {
		cached, err := s.Cache.GetGameList()
		if err != nil {
			s.Log.Warn("game list cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	games, err := repositories.Games(s.DB).GetAll()
	if err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}

	summaries := make([]models.GameSummary, 0, len(games))
	for i := range games {
		if games[i].IsPrivate {
			continue
		}
		summaries = append(summaries, summarizeGame(&games[i]))
	}

	if s.Cache != nil {
		if err := s.Cache.SetGameList(summaries); err != nil {
			s.Log.Warn("game list cache write failed", zap.Error(err))
		}
	}
	return summaries, nil
}

// Get returns the full detail projection, items included. Visibility is not
// checked here: a private game is readable by anyone holding its id.
func (s *GameService) Get(id uuid.UUID) (*models.GameDetail, error) {
	game, err := repositories.Games(s.DB).GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NewNotFoundError("Requested game not found")
	}
	if err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}
	detail := detailGame(game)
	return &detail, nil
}

// Create builds a new game owned by the calling user and commits it. The id
// is always freshly assigned here, never taken from the payload.
func (s *GameService) Create(email string, req *models.GameUpsert) (uuid.UUID, error) {
	user, err := s.resolveUser(email)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	game := postgres.Game{
		ID:          uuid.New(),
		UserID:      user.ID,
		IsPrivate:   req.IsPrivate,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Country:     req.Country,
		Coordinate:  postgres.Coordinate{Latitude: req.Coordinate.Latitude, Longitude: req.Coordinate.Longitude},
		ImageName:   req.ImageName,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		CreatedAt:   now,
		LastUpdated: now,
	}

	repo := repositories.Games(s.DB)
	repo.Create(&game)
	if err := repo.SaveChanges(); err != nil {
		return uuid.Nil, utils.NewBadRequestError(err.Error())
	}

	s.invalidateList()
	s.Log.Info("game created",
		zap.String("game_id", game.ID.String()),
		zap.String("owner_id", user.ID.String()))
	return game.ID, nil
}

// Update replaces every mutable field of an owned game. The owner-scoped
// fetch answers "exists" and "owned by me" in one call, so a foreign game id
// is indistinguishable from a missing one.
func (s *GameService) Update(email string, id uuid.UUID, req *models.GameUpsert) error {
	user, err := s.resolveUser(email)
	if err != nil {
		return err
	}

	repo := repositories.Games(s.DB)
	game, err := repo.Get(id, user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.Log.Info("game update rejected",
			zap.String("game_id", id.String()),
			zap.String("caller_id", user.ID.String()),
			zap.String("reason", s.rejectionReason(repo, id)))
		return utils.NewNotFoundError("Game not found")
	}
	if err != nil {
		return utils.NewBadRequestError(err.Error())
	}

	updated := patchGame(*game, req, time.Now())
	repo.Update(&updated)
	if err := repo.SaveChanges(); err != nil {
		return utils.NewBadRequestError(err.Error())
	}

	s.invalidateList()
	return nil
}

// Delete removes an owned game; items and ratings go with it. Not-found and
// not-owner collapse into the same client error.
func (s *GameService) Delete(email string, id uuid.UUID) error {
	user, err := s.resolveUser(email)
	if err != nil {
		return err
	}

	repo := repositories.Games(s.DB)
	game, err := repo.GetByID(id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return utils.NewBadRequestError(err.Error())
	}
	if game == nil || game.UserID != user.ID {
		reason := "not_found"
		if game != nil {
			reason = "not_owner"
		}
		s.Log.Info("game delete rejected",
			zap.String("game_id", id.String()),
			zap.String("caller_id", user.ID.String()),
			zap.String("reason", reason))
		return utils.NewBadRequestError("Game with provided ID not found.")
	}

	repo.Delete(game)
	if err := repo.SaveChanges(); err != nil {
		return utils.NewBadRequestError(err.Error())
	}

	s.invalidateList()
	s.Log.Info("game deleted",
		zap.String("game_id", id.String()),
		zap.String("owner_id", user.ID.String()))
	return nil
}

// SaveImage stores an uploaded image and returns its content URL. The image
// is not linked to any game here; that happens through a later update.
func (s *GameService) SaveImage(email string, data []byte, name string) (string, error) {
	if _, err := s.resolveUser(email); err != nil {
		return "", err
	}
	url, err := s.Blobs.SaveImage(data, name)
	if err != nil {
		s.Log.Warn("image storage failed", zap.Error(err))
		return "", utils.NewBadGatewayError(err.Error())
	}
	return url, nil
}

func (s *GameService) invalidateList() {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateGameList(); err != nil {
		s.Log.Warn("game list cache invalidation failed", zap.Error(err))
	}
}

// rejectionReason disambiguates a failed owner-scoped fetch for the logs
// only; the caller-visible response stays merged.
func (s *GameService) rejectionReason(repo *repositories.Repository[postgres.Game], id uuid.UUID) string {
	if _, err := repo.GetByID(id); errors.Is(err, repositories.ErrNotFound) {
		return "not_found"
	}
	return "not_owner"
}

// patchGame builds the full replacement value for an update: every mutable
// field comes from the payload, identity and creation time are preserved and
// LastUpdated is refreshed.
func patchGame(game postgres.Game, req *models.GameUpsert, now time.Time) postgres.Game {
	game.IsPrivate = req.IsPrivate
	game.Name = req.Name
	game.Description = req.Description
	game.Address = req.Address
	game.Country = req.Country
	game.Coordinate = postgres.Coordinate{Latitude: req.Coordinate.Latitude, Longitude: req.Coordinate.Longitude}
	game.ImageName = req.ImageName
	game.Difficulty = req.Difficulty
	game.Tags = req.Tags
	game.LastUpdated = now
	return game
}

func summarizeGame(game *postgres.Game) models.GameSummary {
	return models.GameSummary{
		ID:          game.ID,
		IsPrivate:   game.IsPrivate,
		Name:        game.Name,
		Description: game.Description,
		Address:     game.Address,
		Country:     game.Country,
		Coordinate:  models.Coordinate{Latitude: game.Coordinate.Latitude, Longitude: game.Coordinate.Longitude},
		ImageName:   game.ImageName,
		Difficulty:  game.Difficulty,
		Rating:      game.AverageRating(),
		Tags:        game.Tags,
	}
}

func detailGame(game *postgres.Game) models.GameDetail {
	items := make([]models.ItemSummary, 0, len(game.Items))
	for _, item := range game.Items {
		items = append(items, models.ItemSummary{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			ImageName:   item.ImageName,
		})
	}
	return models.GameDetail{
		ID:          game.ID,
		IsPrivate:   game.IsPrivate,
		Name:        game.Name,
		Description: game.Description,
		Address:     game.Address,
		Country:     game.Country,
		Coordinate:  models.Coordinate{Latitude: game.Coordinate.Latitude, Longitude: game.Coordinate.Longitude},
		Items:       items,
		ImageName:   game.ImageName,
		Difficulty:  game.Difficulty,
		Rating:      game.AverageRating(),
		Tags:        game.Tags,
	}
}
