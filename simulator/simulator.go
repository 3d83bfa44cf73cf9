package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimConfig tunes the seeding and load run
type SimConfig struct {
	NumUsers       int
	PostsPerUser   int
	ReportRate     float64 // probability a user reports a random post
	CommentRate    float64 // probability a user comments on a random post
	BookmarkRate   float64 // probability a user bookmarks a random post
	SimulationTime time.Duration
	EngineURL      string
}

// SimulationStats tracks request outcomes during the run
type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	TotalPosts       int
	TotalComments    int
	TotalReports     int
	RequestLatencies []time.Duration
}

// SimulatedUser is a registered account driven by the simulator
type SimulatedUser struct {
	ID       uuid.UUID
	Username string
	Email    string
	Token    string
	Posts    []uuid.UUID
}

// Simulator seeds a running engine with users and overlapping lost/found
// posts, then files reports and comments against them. Built-in item
// templates guarantee some pairs that the matching engine should pick up.
type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	users  []*SimulatedUser
	posts  []uuid.UUID
	client *http.Client
	mu     sync.RWMutex
}

// itemTemplates pair a lost description with a found description of the
// same item, so matching runs over seeded data produce hits.
var itemTemplates = []struct {
	Lost     string
	Found    string
	Location string
}{
	{"Blue Hydro Flask water bottle with stickers", "Blue Hydro Flask water bottle covered in stickers", "Marston Library"},
	{"Black leather wallet with student ID inside", "Black leather wallet containing a student ID", "Reitz Union food court"},
	{"Silver MacBook Pro 13 inch with a cracked corner", "Silver MacBook Pro laptop, corner cracked", "Library West second floor"},
	{"Red mountain bike with a broken bell", "Red mountain bike, bell missing", "Bike rack near Turlington"},
	{"AirPods Pro in a white charging case", "White AirPods charging case with earbuds inside", "Plaza of the Americas"},
	{"Gray North Face backpack with a calculus textbook", "Gray North Face backpack, has a math textbook", "Bus stop on Museum Road"},
}

var reportTypes = []string{"Spam", "Inappropriate Content", "Suspicious Activity", "Item Claim"}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Run executes the full simulation: seed users, seed posts, then file
// comments, bookmarks and reports until the context expires.
func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting lost & found simulation...")

	if err := s.createUsers(ctx); err != nil {
		return fmt.Errorf("failed to create users: %v", err)
	}
	if len(s.users) == 0 {
		return fmt.Errorf("no users registered, cannot continue")
	}

	if err := s.createPosts(ctx); err != nil {
		return fmt.Errorf("failed to create posts: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateActivity(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) createUsers(ctx context.Context) error {
	log.Printf("Phase 1: Registering %d users...", s.config.NumUsers)

	rateLimiter := time.NewTicker(100 * time.Millisecond)
	defer rateLimiter.Stop()

	for i := 0; i < s.config.NumUsers; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rateLimiter.C:
		}

		user := &SimulatedUser{
			Username: fmt.Sprintf("gator_%d", i),
			Email:    fmt.Sprintf("gator_%d@test.edu", i),
			Posts:    make([]uuid.UUID, 0),
		}

		if err := s.registerAndLogin(user); err != nil {
			log.Printf("Failed to set up user %s: %v", user.Username, err)
			continue
		}

		s.mu.Lock()
		s.users = append(s.users, user)
		s.mu.Unlock()
	}

	log.Printf("Registered %d users", len(s.users))
	return nil
}

func (s *Simulator) registerAndLogin(user *SimulatedUser) error {
	regData := map[string]interface{}{
		"username":  user.Username,
		"email":     user.Email,
		"password":  "testpass123",
		"studentId": fmt.Sprintf("UF%08d", rand.Intn(100000000)),
	}

	resp, err := s.makeRequest("POST", "/user/register", "", regData)
	if err != nil {
		return fmt.Errorf("registration failed: %v", err)
	}

	var regResult struct {
		ID string `json:"ID"`
	}
	if err := json.Unmarshal(resp, &regResult); err != nil {
		return fmt.Errorf("failed to parse registration response: %v", err)
	}
	userID, err := uuid.Parse(regResult.ID)
	if err != nil {
		return fmt.Errorf("invalid user ID returned: %v", err)
	}
	user.ID = userID

	loginData := map[string]interface{}{
		"email":    user.Email,
		"password": "testpass123",
	}
	resp, err = s.makeRequest("POST", "/user/login", "", loginData)
	if err != nil {
		return fmt.Errorf("login failed: %v", err)
	}

	var loginResult struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(resp, &loginResult); err != nil {
		return fmt.Errorf("failed to parse login response: %v", err)
	}
	if !loginResult.Success || loginResult.Token == "" {
		return fmt.Errorf("login rejected for %s", user.Email)
	}

	user.Token = loginResult.Token
	return nil
}

func (s *Simulator) createPosts(ctx context.Context) error {
	log.Printf("Phase 2: Creating posts (%d per user)...", s.config.PostsPerUser)

	rateLimiter := time.NewTicker(100 * time.Millisecond)
	defer rateLimiter.Stop()

	for _, user := range s.users {
		for i := 0; i < s.config.PostsPerUser; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-rateLimiter.C:
			}

			template := itemTemplates[rand.Intn(len(itemTemplates))]

			// Alternate sides so lost and found posts describe the same items
			status := "lost"
			description := template.Lost
			if i%2 == 1 {
				status = "found"
				description = template.Found
			}

			data := map[string]interface{}{
				"title":       fmt.Sprintf("%s item near %s", status, template.Location),
				"description": description,
				"location":    template.Location,
				"status":      status,
			}

			resp, err := s.makeRequest("POST", "/post", user.Token, data)
			if err != nil {
				log.Printf("Failed to create post for %s: %v", user.Username, err)
				continue
			}

			var result struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(resp, &result); err != nil {
				continue
			}
			postID, err := uuid.Parse(result.ID)
			if err != nil {
				continue
			}

			user.Posts = append(user.Posts, postID)
			s.mu.Lock()
			s.posts = append(s.posts, postID)
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.TotalPosts++
			s.stats.mu.Unlock()
		}
	}

	log.Printf("Created %d posts", len(s.posts))
	return nil
}

// simulateActivity files comments, bookmarks and reports against random
// posts until the context expires.
func (s *Simulator) simulateActivity(ctx context.Context) {
	log.Printf("Phase 3: Simulating user activity...")
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			if len(s.users) == 0 || len(s.posts) == 0 {
				s.mu.RUnlock()
				continue
			}
			user := s.users[rand.Intn(len(s.users))]
			postID := s.posts[rand.Intn(len(s.posts))]
			s.mu.RUnlock()

			roll := rand.Float64()
			switch {
			case roll < s.config.CommentRate:
				data := map[string]interface{}{
					"postId":  postID.String(),
					"content": fmt.Sprintf("I think I saw this near %s yesterday", itemTemplates[rand.Intn(len(itemTemplates))].Location),
				}
				if _, err := s.makeRequest("POST", "/comment", user.Token, data); err == nil {
					s.stats.mu.Lock()
					s.stats.TotalComments++
					s.stats.mu.Unlock()
				}

			case roll < s.config.CommentRate+s.config.ReportRate:
				data := map[string]interface{}{
					"postId":      postID.String(),
					"type":        reportTypes[rand.Intn(len(reportTypes))],
					"description": "This post looks off, please take a look",
				}
				if _, err := s.makeRequest("POST", "/report", user.Token, data); err == nil {
					s.stats.mu.Lock()
					s.stats.TotalReports++
					s.stats.mu.Unlock()
				}

			case roll < s.config.CommentRate+s.config.ReportRate+s.config.BookmarkRate:
				data := map[string]interface{}{
					"postId": postID.String(),
				}
				s.makeRequest("POST", "/user/bookmark", user.Token, data)
			}
		}
	}
}

// makeRequest issues a JSON request, attaching the bearer token when given
func (s *Simulator) makeRequest(method, endpoint, token string, data interface{}) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.EngineURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.recordRequestMetrics(start, err)

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)

	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.stats.mu.RLock()
			elapsed := time.Since(s.stats.StartTime)
			requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()
			successRate := 0.0
			if s.stats.TotalRequests > 0 {
				successRate = float64(s.stats.SuccessRequests) / float64(s.stats.TotalRequests) * 100
			}

			log.Printf("\nSimulation Metrics (%.1f seconds elapsed):", elapsed.Seconds())
			log.Printf("- Request Rate: %.2f req/sec", requestRate)
			log.Printf("- Success Rate: %.1f%%", successRate)
			log.Printf("- Average Latency: %v", s.stats.AverageLatency)
			log.Printf("- Total Posts: %d", s.stats.TotalPosts)
			log.Printf("- Total Comments: %d", s.stats.TotalComments)
			log.Printf("- Total Reports: %d", s.stats.TotalReports)
			log.Printf("- Failed Requests: %d", s.stats.FailedRequests)
			s.stats.mu.RUnlock()
		}
	}
}

// SimulationMetrics holds the final metrics of a run
type SimulationMetrics struct {
	TotalUsers        int
	TotalPosts        int
	TotalComments     int
	TotalReports      int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	return SimulationMetrics{
		TotalUsers:        len(s.users),
		TotalPosts:        s.stats.TotalPosts,
		TotalComments:     s.stats.TotalComments,
		TotalReports:      s.stats.TotalReports,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
