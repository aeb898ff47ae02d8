// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/resize"
	"github.com/cloudchore/cloudchore/internal/storage"
)

// Server holds the dependencies of the resize HTTP service. Uploads is the
// bucket source objects are fetched from; Resized is where results land.
type Server struct {
	Uploads  storage.ObjectStore
	Resized  storage.ObjectStore
	Defaults resize.Options
}

// NewRouter builds the gin engine with all routes registered. The engine is
// returned unstarted so tests can drive it with httptest.
func NewRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", s.GetHealth)
	router.POST("/resize", s.PostResize)

	return router
}

// Run starts the service and blocks until the listener fails.
func Run(s *Server, addr string) error {
	log.Infof("resize service listening on %s", addr)
	return NewRouter(s).Run(addr)
}
