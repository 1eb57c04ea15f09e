package rest

func (s *HTTPServer) registerRoutes() {
	s.app.Use(s.requestLogger)

	s.app.Get("/health", s.Health)
	s.app.Post("/login", s.Login)

	s.app.Get("/users", s.requireToken, s.ListUsers)
	s.app.Post("/users", s.CreateUser)
	s.app.Put("/users/:id", s.UpdateUser)
	s.app.Delete("/users/:id", s.DeleteUser)
}
