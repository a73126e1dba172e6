package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

// ListExperience returns all timeline entries ordered for display.
func ListExperience(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var entries []dbpkg.Experience
		if err := db.Order("sort_order ASC, start_date DESC").Find(&entries).Error; err != nil {
			log.Error().Err(err).Msg("failed to fetch experiences")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch experiences")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, entries)
	}
}

// CreateExperience adds a timeline entry.
func CreateExperience(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Experience
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}
		if err := db.Create(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to create experience")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create experience")
			return
		}
		jsonResponse(ctx, fasthttp.StatusCreated, payload)
	}
}

// UpdateExperience replaces an entry by id; 404 when the id is unknown.
func UpdateExperience(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Experience
		if !decodeBody(ctx, &payload) {
			return
		}
		if payload.ID == 0 {
			errResponse(ctx, fasthttp.StatusBadRequest, "experience id is required")
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}

		var existing dbpkg.Experience
		if err := db.First(&existing, payload.ID).Error; err != nil {
			if errors.Is(err, dbpkg.ErrNotFound) {
				errResponse(ctx, fasthttp.StatusNotFound, "experience not found")
				return
			}
			log.Error().Err(err).Msg("failed to load experience")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update experience")
			return
		}

		payload.CreatedAt = existing.CreatedAt
		if err := db.Save(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to update experience")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update experience")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}

// DeleteExperience removes an entry by ?id=; 404 when the id is unknown.
func DeleteExperience(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id, ok := idFromQuery(ctx)
		if !ok {
			return
		}

		res := db.Delete(&dbpkg.Experience{}, id)
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("failed to delete experience")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete experience")
			return
		}
		if res.RowsAffected == 0 {
			errResponse(ctx, fasthttp.StatusNotFound, "experience not found")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"message": "experience deleted"})
	}
}
