package handler

import (
	"net/http"
	"time"

	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Title            string     `json:"title" binding:"required" example:"Portal 2"`
	Developer        string     `json:"developer" example:"Valve"`
	Publisher        string     `json:"publisher"`
	ReleaseDate      string     `json:"releaseDate" example:"2011-04-18"`
	ShortDescription string     `json:"shortDescription"`
	FullDescription  string     `json:"fullDescription"`
	Genre            string     `json:"genre" example:"Puzzle"`
	Tags             string     `json:"tags"`
	Rating           string     `json:"rating"`
	Difficulty       string     `json:"difficulty"`
	Image            string     `json:"image"`
	DownloadLink     string     `json:"downloadLink"`
	FileSize         string     `json:"fileSize"`
	Requirements     string     `json:"requirements"`
	Notes            string     `json:"notes"`
	AddedBy          string     `json:"addedBy"`
	Timestamp        *time.Time `json:"timestamp"`
}

func (in GameInput) toModel() models.Game {
	g := models.Game{
		Title:            in.Title,
		Developer:        in.Developer,
		Publisher:        in.Publisher,
		ReleaseDate:      in.ReleaseDate,
		ShortDescription: in.ShortDescription,
		FullDescription:  in.FullDescription,
		Genre:            in.Genre,
		Tags:             in.Tags,
		Rating:           in.Rating,
		Difficulty:       in.Difficulty,
		Image:            in.Image,
		DownloadLink:     in.DownloadLink,
		FileSize:         in.FileSize,
		Requirements:     in.Requirements,
		Notes:            in.Notes,
		AddedBy:          in.AddedBy,
	}
	if in.Timestamp != nil {
		g.Timestamp = *in.Timestamp
	}
	return g
}

// GameResponse is a game as seen by the caller.
type GameResponse struct {
	models.Game
	IsFavorite bool `json:"is_favorite"`
}

func newGameResponses(games []models.Game, favoriteIDs map[int]bool) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, GameResponse{Game: g, IsFavorite: favoriteIDs[g.ID]})
	}
	return out
}

// endregion

// region --- Public Handlers ---

// GetGames godoc
// @Summary      List games
// @Description  Returns the whole catalog. With a bearer token each game carries is_favorite. A token that is expired or revoked is ignored and the response carries X-Session-Status: invalid. Passing page switches to a paginated envelope.
// @Tags         games
// @Produce      json
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Items per page" default(10)
// @Success      200 {array}  GameResponse
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Header       200 {string} X-Session-Status "invalid when the supplied token was rejected"
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	ctx := c.Request.Context()
	games, err := h.Catalog.ListGames(ctx)
	if err != nil {
		respondError(c, "list games", err)
		return
	}

	var favoriteIDs map[int]bool
	if id, ok := auth.CurrentIdentity(c); ok {
		favoriteIDs, err = h.Catalog.FavoriteGameIDs(ctx, id.ID)
		if err != nil {
			respondError(c, "list games", err)
			return
		}
	}
	responses := newGameResponses(games, favoriteIDs)

	if page, limit, ok := pageParams(c); ok {
		c.JSON(http.StatusOK, Paginate(responses, page, limit))
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetGameByID godoc
// @Summary      Get a game
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} models.Game
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	g, err := h.Catalog.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get game", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// endregion

// region --- Catalog Management ---

// CreateGame godoc
// @Summary      Add a game
// @Description  Adds a game to the catalog. Requires the gameadder or admin role.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  models.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Insufficient permissions"
// @Router       /games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var input GameInput
	if !bindJSON(c, &input) {
		return
	}

	g, err := h.Catalog.AddGame(c.Request.Context(), caller(c), input.toModel())
	if err != nil {
		respondError(c, "add game", err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game with its comments, ratings and favorites.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Insufficient permissions"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, "delete game", err)
		return
	}
	c.JSON(http.StatusOK, success)
}

// endregion
