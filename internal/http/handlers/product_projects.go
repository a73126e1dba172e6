package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

// ListProductProjects returns product showcase cards, optionally filtered
// by ?category=.
func ListProductProjects(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		q := db.Model(&dbpkg.ProductProject{})
		if category := string(ctx.QueryArgs().Peek("category")); category != "" && category != "all" {
			q = q.Where("category = ?", category)
		}

		var products []dbpkg.ProductProject
		if err := q.Order("sort_order ASC, created_at DESC").Find(&products).Error; err != nil {
			log.Error().Err(err).Msg("failed to fetch product projects")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch product projects")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, products)
	}
}

// CreateProductProject adds a product showcase card.
func CreateProductProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.ProductProject
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid product payload")
			return
		}
		if err := db.Create(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to create product project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create product project")
			return
		}
		jsonResponse(ctx, fasthttp.StatusCreated, payload)
	}
}

// UpdateProductProject replaces a card by id; 404 when the id is unknown.
func UpdateProductProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.ProductProject
		if !decodeBody(ctx, &payload) {
			return
		}
		if payload.ID == 0 {
			errResponse(ctx, fasthttp.StatusBadRequest, "product id is required")
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid product payload")
			return
		}

		var existing dbpkg.ProductProject
		if err := db.First(&existing, payload.ID).Error; err != nil {
			if errors.Is(err, dbpkg.ErrNotFound) {
				errResponse(ctx, fasthttp.StatusNotFound, "product project not found")
				return
			}
			log.Error().Err(err).Msg("failed to load product project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update product project")
			return
		}

		payload.CreatedAt = existing.CreatedAt
		if err := db.Save(&payload).Error; err != nil {
			log.Error().Err(err).Msg("failed to update product project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update product project")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}

// DeleteProductProject removes a card by ?id=; 404 when the id is unknown.
func DeleteProductProject(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id, ok := idFromQuery(ctx)
		if !ok {
			return
		}

		res := db.Delete(&dbpkg.ProductProject{}, id)
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("failed to delete product project")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete product project")
			return
		}
		if res.RowsAffected == 0 {
			errResponse(ctx, fasthttp.StatusNotFound, "product project not found")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"message": "product project deleted"})
	}
}
