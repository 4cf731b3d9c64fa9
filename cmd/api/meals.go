package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
	"github.com/AnnikaM10/cs411hw3/internal/service"
	"github.com/go-chi/chi"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

type CreateMealRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Cuisine    string  `json:"cuisine" validate:"required,max=100"`
	Price      float64 `json:"price" validate:"gte=0"`
	Difficulty string  `json:"difficulty" validate:"required,oneof=low med high"`
}

// createMealHandler godoc
//
//	@Summary		Create a meal
//	@Description	Creates a new meal with battle stats initialized to zero
//	@Tags			meals
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMealRequest	true	"Meal to create"
//	@Success		201		{object}	domain.Meal
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/meals [post]
func (app *application) createMealHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMealRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	meal, err := app.mealService.CreateMeal(r.Context(), req.Name, req.Cuisine, req.Price, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMeal):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, repo.ErrDuplicateMeal):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, meal); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMealHandler godoc
//
//	@Summary		Get meal by ID
//	@Description	Get meal details by meal ID
//	@Tags			meals
//	@Produce		json
//	@Param			meal_id	path		int	true	"Meal ID"
//	@Success		200		{object}	domain.Meal
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/meals/{meal_id} [get]
func (app *application) getMealHandler(w http.ResponseWriter, r *http.Request) {
	mealID, err := strconv.ParseInt(chi.URLParam(r, "meal_id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	meal, err := app.mealService.GetMealByID(r.Context(), mealID)
	if err != nil {
		if errors.Is(err, repo.ErrMealNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, meal); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMealByNameHandler godoc
//
//	@Summary		Get meal by name
//	@Description	Get meal details by display name
//	@Tags			meals
//	@Produce		json
//	@Param			meal_name	path		string	true	"Meal name"
//	@Success		200			{object}	domain.Meal
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/meals/by-name/{meal_name} [get]
func (app *application) getMealByNameHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "meal_name")
	if name == "" {
		app.badRequestResponse(w, r, errors.New("meal_name is required"))
		return
	}

	meal, err := app.mealService.GetMealByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, repo.ErrMealNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, meal); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMealHandler godoc
//
//	@Summary		Delete a meal
//	@Description	Soft-deletes a meal; its battle history is preserved
//	@Tags			meals
//	@Produce		json
//	@Param			meal_id	path		int	true	"Meal ID"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/meals/{meal_id} [delete]
func (app *application) deleteMealHandler(w http.ResponseWriter, r *http.Request) {
	mealID, err := strconv.ParseInt(chi.URLParam(r, "meal_id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.mealService.DeleteMeal(r.Context(), mealID); err != nil {
		if errors.Is(err, repo.ErrMealNotFound) {
			app.notFoundError(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"status": "meal deleted",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearMealsHandler godoc
//
//	@Summary		Clear all meals
//	@Description	Removes every meal record and restarts the id sequence
//	@Tags			meals
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/meals [delete]
func (app *application) clearMealsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.mealService.ClearMeals(r.Context()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"status": "meals cleared",
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// leaderboardHandler godoc
//
//	@Summary		Leaderboard
//	@Description	Meals with at least one battle, sorted by wins or win rate
//	@Tags			meals
//	@Produce		json
//	@Param			sort	query		string	false	"Sort key: wins or win_rate"	default(wins)
//	@Param			limit	query		int		false	"Max entries"					default(10)
//	@Success		200		{array}		repo.LeaderboardEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/leaderboard [get]
func (app *application) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := app.mealService.Leaderboard(r.Context(), sortBy, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSortKey) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, entries); err != nil {
		app.internalServerError(w, r, err)
	}
}
