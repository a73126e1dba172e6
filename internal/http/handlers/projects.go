package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

// ListProjects returns project cards, optionally filtered by ?category=.
// The literal category "all" matches everything, mirroring the public site's
// category tabs.
func ListProjects(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		q := db.Model(&dbpkg.Project{})
		if category := string(ctx.QueryArgs().Peek("category")); category != "" && category != "all" {
			q = q.Where("category = ?", category)
		}

		var projects []dbpkg.Project
		if err := q.Order("sort_order ASC, created_at DESC").Find(&projects).Error; err != nil {
			log.Error().Err(err).Msg("failed to fetch projects")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch projects")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, projects)
	}
}

// CreateProject adds a project card.
func CreateProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Project
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid project payload")
			return
		}
		if err := db.Create(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to create project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create project")
			return
		}
		jsonResponse(ctx, fasthttp.StatusCreated, payload)
	}
}

// UpdateProject replaces a project by id; 404 when the id is unknown.
func UpdateProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Project
		if !decodeBody(ctx, &payload) {
			return
		}
		if payload.ID == 0 {
			errResponse(ctx, fasthttp.StatusBadRequest, "project id is required")
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid project payload")
			return
		}

		var existing dbpkg.Project
		if err := db.First(&existing, payload.ID).Error; err != nil {
			if errors.Is(err, dbpkg.ErrNotFound) {
				errResponse(ctx, fasthttp.StatusNotFound, "project not found")
				return
			}
			log.Error().Err(err).Msg("failed to load project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update project")
			return
		}

		payload.CreatedAt = existing.CreatedAt
		if err := db.Save(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to update project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update project")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}

// DeleteProject removes a project by ?id=; 404 when the id is unknown.
func DeleteProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id, ok := idFromQuery(ctx)
		if !ok {
			return
		}

		res := db.Delete(&dbpkg.Project{}, id)
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("failed to delete project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete project")
			return
		}
		if res.RowsAffected == 0 {
			errResponse(ctx, fasthttp.StatusNotFound, "project not found")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"message": "project deleted"})
	}
}
