package rest

func (s *server) routes() {
	s.router.HandleFunc("/api/v1/status", s.APIStatus()).Methods("GET")
	s.router.HandleFunc("/api/v1/profiles", s.ProfileList()).Methods("GET")
	s.router.HandleFunc("/api/v1/profiles/{profile}/parameters", s.ProfileParameters()).Methods("GET")
	s.router.HandleFunc("/api/v1/profiles/{profile}/rspec", s.ProfileRender()).Methods("POST")
}
