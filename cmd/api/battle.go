package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AnnikaM10/cs411hw3/internal/battle"
	"github.com/AnnikaM10/cs411hw3/internal/entropy"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
)

type PrepCombatantRequest struct {
	MealID int64 `json:"meal_id" validate:"required,gt=0"`
}

type BattleResponse struct {
	Winner      string  `json:"winner"`
	WinnerID    int64   `json:"winner_id"`
	LoserID     int64   `json:"loser_id"`
	WinnerScore float64 `json:"winner_score"`
	LoserScore  float64 `json:"loser_score"`
	Delta       float64 `json:"delta"`
	Draw        float64 `json:"draw"`
}

// prepCombatantHandler godoc
//
//	@Summary		Stage a combatant
//	@Description	Stages a stored meal for the next battle; at most two can be staged
//	@Tags			battle
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PrepCombatantRequest	true	"Meal to stage"
//	@Success		201		{object}	domain.Meal
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/battle/combatants [post]
func (app *application) prepCombatantHandler(w http.ResponseWriter, r *http.Request) {
	var req PrepCombatantRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	meal, err := app.battleService.PrepCombatant(r.Context(), req.MealID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrMealNotFound):
			app.notFoundError(w, r, err)
		case errors.Is(err, battle.ErrArenaFull):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, meal); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCombatantsHandler godoc
//
//	@Summary		List staged combatants
//	@Tags			battle
//	@Produce		json
//	@Success		200	{array}	domain.Meal
//	@Router			/battle/combatants [get]
func (app *application) getCombatantsHandler(w http.ResponseWriter, r *http.Request) {
	combatants := app.battleService.Combatants()

	if err := app.jsonRespone(w, http.StatusOK, combatants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearCombatantsHandler godoc
//
//	@Summary		Clear staged combatants
//	@Tags			battle
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/battle/combatants [delete]
func (app *application) clearCombatantsHandler(w http.ResponseWriter, r *http.Request) {
	app.battleService.ClearCombatants()

	response := map[string]string{
		"status": "combatants cleared",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// battleHandler godoc
//
//	@Summary		Run a battle
//	@Description	Resolves the battle between the two staged combatants; the loser is evicted
//	@Tags			battle
//	@Produce		json
//	@Success		200	{object}	BattleResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		502	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/battle [post]
func (app *application) battleHandler(w http.ResponseWriter, r *http.Request) {
	res, err := app.battleService.Fight(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, battle.ErrNotEnoughCombatants):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, entropy.ErrUnavailable),
			errors.Is(err, entropy.ErrBadResponse),
			errors.Is(err, entropy.ErrOutOfRange):
			app.badGatewayResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	response := BattleResponse{
		Winner:      res.WinnerName,
		WinnerID:    res.Winner.ID,
		LoserID:     res.Loser.ID,
		WinnerScore: res.WinnerScore,
		LoserScore:  res.LoserScore,
		Delta:       res.Delta,
		Draw:        res.Draw,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// battleAuditHandler godoc
//
//	@Summary		Recent battle audit records
//	@Tags			battle
//	@Produce		json
//	@Param			limit	query		int	false	"Max records"	default(20)
//	@Success		200		{array}		domain.BattleAudit
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/battle/audit [get]
func (app *application) battleAuditHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	audits, err := app.battleService.RecentBattles(r.Context(), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
