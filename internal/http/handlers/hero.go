package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

func defaultHero() dbpkg.Hero {
	return dbpkg.Hero{
		Headline:         "Welcome to My Portfolio",
		Subtext:          "Building digital experiences with passion",
		PrimaryCtaText:   "View Projects",
		PrimaryCtaLink:   "#projects",
		SecondaryCtaText: "Contact Me",
		SecondaryCtaLink: "#contact",
		HeroImage:        "/hero-image.jpg",
	}
}

// GetHero returns the hero banner, creating it with defaults on first read.
func GetHero(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var hero dbpkg.Hero
		err := db.First(&hero).Error
		if errors.Is(err, dbpkg.ErrNotFound) {
			hero = defaultHero()
			err = db.Create(&hero).Error
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch hero")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch hero data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, hero)
	}
}

// UpdateHero replaces the hero document with the submitted one, creating it
// when absent.
func UpdateHero(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Hero
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}

		var existing dbpkg.Hero
		err := db.First(&existing).Error
		switch {
		case errors.Is(err, dbpkg.ErrNotFound):
			err = db.Create(&payload).Error
		case err == nil:
			payload.ID = existing.ID
			payload.CreatedAt = existing.CreatedAt
			err = db.Save(&payload).Error
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to update hero")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update hero data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}
