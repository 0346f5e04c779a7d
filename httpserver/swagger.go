package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// @title CineSearch API
// @version 1.0
// @description Proxy endpoints in front of The Movie Database.
// @BasePath /
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
