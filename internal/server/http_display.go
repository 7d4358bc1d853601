package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo(addr string) {
	scheme := "http"
	if s.TLS.Enabled() {
		scheme = "https"
	}
	fmt.Printf("Resume builder listening on %s://%s\n", scheme, addr)
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health                        - Health check")
	fmt.Println("  GET    /stats                         - Server statistics")
	fmt.Println("  GET    /document                      - Current document and score")
	fmt.Println("  PUT    /document                      - Import a document")
	fmt.Println("  DELETE /document                      - Reset to the empty document")
	fmt.Println("  PUT    /document/personal-info        - Replace personal information")
	fmt.Println("  PUT    /document/template             - Select template")
	fmt.Println("  POST   /document/experiences          - Add experience")
	fmt.Println("  PATCH  /document/experiences/{id}     - Update experience")
	fmt.Println("  DELETE /document/experiences/{id}     - Remove experience")
	fmt.Println("  POST   /document/education            - Add education")
	fmt.Println("  PATCH  /document/education/{id}       - Update education")
	fmt.Println("  DELETE /document/education/{id}       - Remove education")
	fmt.Println("  POST   /document/skills               - Add skill")
	fmt.Println("  DELETE /document/skills/{index}       - Remove skill")
	fmt.Println("  GET    /score                         - ATS score")
	fmt.Println("  GET    /preview                       - Rendered preview")
	fmt.Println("  POST   /enhance                       - Generate content (stateless)")
	fmt.Println("  POST   /enhance/summary               - Generate the summary")
	fmt.Println("  POST   /enhance/experiences/{id}      - Enhance an experience")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /document, /score, /preview and /enhance")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimiter != nil {
		fmt.Printf("Rate limiting on /enhance: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
