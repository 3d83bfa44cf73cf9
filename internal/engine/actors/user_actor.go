package actors

import (
	"gator-find/internal/database"
	"gator-find/internal/models"
	"gator-find/internal/types"
	"gator-find/internal/utils"
	"log"
	"sync"
	"time"

	stdctx "context"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserSupervisor manages all user actors
type UserSupervisor struct {
	userActors map[uuid.UUID]*actor.PID
	emailToID  map[string]uuid.UUID
	mu         sync.RWMutex
	users      database.UserStore
	posts      database.PostStore
}

func NewUserSupervisor(users database.UserStore, posts database.PostStore) actor.Actor {
	return &UserSupervisor{
		userActors: make(map[uuid.UUID]*actor.PID),
		emailToID:  make(map[string]uuid.UUID),
		users:      users,
		posts:      posts,
	}
}

// Message types for user operations
type (
	RegisterUserMsg struct {
		Username  string
		Email     string
		Password  string
		StudentID string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID
	}

	UpdateProfileMsg struct {
		UserID    uuid.UUID
		Bio       string
		StudentID string
	}

	// ToggleBookmarkMsg adds the post to the user's bookmarks, or removes
	// it when already present.
	ToggleBookmarkMsg struct {
		UserID uuid.UUID
		PostID uuid.UUID
	}

	GetLeaderboardMsg struct {
		Limit int
	}
)

// UserState represents the internal state of a user actor
type UserState struct {
	ID             uuid.UUID
	Username       string
	Email          string
	Points         int
	Bio            string
	StudentID      string
	IsVerified     bool
	IsAdmin        bool
	Bookmarks      []uuid.UUID
	LastActive     time.Time
	HashedPassword string
}

func (s *UserSupervisor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		s.mu.Lock()
		defer s.mu.Unlock()

		if msg.Username == "" || msg.Email == "" || msg.Password == "" {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Username, email and password are required", nil))
			return
		}

		// Check if the email is already registered
		ctx := stdctx.Background()
		existingUser, _ := s.users.GetUserByEmail(ctx, msg.Email)
		if existingUser != nil {
			log.Printf("Email already registered: %s", msg.Email)
			context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Email already registered", nil))
			return
		}

		// Create new user ID and actor
		userID := uuid.New()
		props := actor.PropsFromProducer(func() actor.Actor {
			return NewUserActor(userID, s.users, s.posts)
		})

		pid := context.Spawn(props)
		s.userActors[userID] = pid
		s.emailToID[msg.Email] = userID

		future := context.RequestFuture(pid, msg, 5*time.Second)
		result, err := future.Result()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			context.Respond(utils.NewAppError(utils.ErrActorTimeout, "User creation failed", err))
			return
		}
		context.Respond(result)

	case *LoginMsg:
		log.Printf("UserSupervisor: Processing login request for email: %s", msg.Email)

		ctx := stdctx.Background()
		user, err := s.users.GetUserByEmail(ctx, msg.Email)
		if err != nil {
			log.Printf("UserSupervisor: User not found: %v", err)
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}

		// Check if we already have an actor for this user
		s.mu.RLock()
		pid, exists := s.userActors[user.ID]
		s.mu.RUnlock()

		if !exists {
			props := actor.PropsFromProducer(func() actor.Actor {
				return NewUserActor(user.ID, s.users, s.posts)
			})

			pid = context.Spawn(props)

			s.mu.Lock()
			s.userActors[user.ID] = pid
			s.emailToID[user.Email] = user.ID
			s.mu.Unlock()
		}

		// Forward login request to the user actor
		future := context.RequestFuture(pid, msg, 5*time.Second)
		result, err := future.Result()
		if err != nil {
			log.Printf("UserSupervisor: Login request to user actor failed: %v", err)
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Login failed",
			})
			return
		}

		context.Respond(result)

	case *GetUserProfileMsg:
		pid, err := s.getOrCreateUserActor(context, msg.UserID)
		if err != nil {
			log.Printf("UserSupervisor: Failed to get/create user actor: %v", err)
			context.Respond(utils.NewUserNotFoundError(msg.UserID.String()))
			return
		}

		s.forward(context, pid, msg)

	case *UpdateProfileMsg:
		pid, err := s.getOrCreateUserActor(context, msg.UserID)
		if err != nil {
			context.Respond(utils.NewUserNotFoundError(msg.UserID.String()))
			return
		}

		s.forward(context, pid, msg)

	case *ToggleBookmarkMsg:
		pid, err := s.getOrCreateUserActor(context, msg.UserID)
		if err != nil {
			context.Respond(utils.NewUserNotFoundError(msg.UserID.String()))
			return
		}

		s.forward(context, pid, msg)

	case *GetLeaderboardMsg:
		ctx := stdctx.Background()
		entries, err := s.users.TopUsers(ctx, msg.Limit)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch leaderboard", err))
			return
		}
		if entries == nil {
			entries = make([]*models.LeaderboardEntry, 0)
		}
		context.Respond(entries)
	}
}

func (s *UserSupervisor) forward(context actor.Context, pid *actor.PID, msg interface{}) {
	future := context.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		context.Respond(utils.NewActorTimeoutError("user actor"))
		return
	}
	context.Respond(result)
}

func (s *UserSupervisor) getOrCreateUserActor(context actor.Context, userID uuid.UUID) (*actor.PID, error) {
	s.mu.RLock()
	pid, exists := s.userActors[userID]
	s.mu.RUnlock()

	if exists {
		return pid, nil
	}

	ctx := stdctx.Background()
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(user.ID, s.users, s.posts)
	})

	pid = context.Spawn(props)

	s.mu.Lock()
	s.userActors[user.ID] = pid
	s.emailToID[user.Email] = user.ID
	s.mu.Unlock()

	return pid, nil
}

// UserActor owns a single user's state
type UserActor struct {
	id    uuid.UUID
	state *UserState
	users database.UserStore
	posts database.PostStore
}

func NewUserActor(id uuid.UUID, users database.UserStore, posts database.PostStore) *UserActor {
	return &UserActor{
		id: id,
		state: &UserState{
			ID:        id,
			Bookmarks: make([]uuid.UUID, 0),
		},
		users: users,
		posts: posts,
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func stateFromUser(user *models.User) *UserState {
	return &UserState{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Points:         user.Points,
		Bio:            user.Bio,
		StudentID:      user.StudentID,
		IsVerified:     user.IsVerified,
		IsAdmin:        user.IsAdmin,
		Bookmarks:      user.Bookmarks,
		LastActive:     user.LastActive,
		HashedPassword: user.HashedPassword,
	}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		hashedPassword, err := hashPassword(msg.Password)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Failed to hash password", err))
			return
		}

		now := time.Now()
		user := &models.User{
			ID:             a.id,
			Username:       msg.Username,
			Email:          msg.Email,
			HashedPassword: hashedPassword,
			Points:         0,
			StudentID:      msg.StudentID,
			Bookmarks:      make([]uuid.UUID, 0),
			CreatedAt:      now,
			LastActive:     now,
		}

		ctx := stdctx.Background()
		if err := a.users.SaveUser(ctx, user); err != nil {
			log.Printf("Failed to save user: %v", err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
			return
		}

		a.state = stateFromUser(user)
		log.Printf("Successfully registered user %s", a.id)

		context.Respond(&UserState{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Points:    user.Points,
			StudentID: user.StudentID,
		})

	case *LoginMsg:
		ctx := stdctx.Background()
		user, err := a.users.GetUserByEmail(ctx, msg.Email)
		if err != nil {
			log.Printf("Login failed - error fetching user: %v", err)
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password))
		if err != nil {
			log.Printf("Login failed - password comparison error: %v", err)
			context.Respond(&types.LoginResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}

		if err := a.users.UpdateUserActivity(ctx, user.ID); err != nil {
			log.Printf("Warning: Failed to update user activity: %v", err)
		}

		a.state = stateFromUser(user)
		log.Printf("Login successful for user: %s", user.Username)

		// The HTTP layer mints the session token; the actor only vouches
		// for the credentials.
		context.Respond(&types.LoginResponse{
			Success: true,
			UserID:  user.ID.String(),
			IsAdmin: user.IsAdmin,
		})

	case *GetUserProfileMsg:
		ctx := stdctx.Background()
		user, err := a.users.GetUser(ctx, msg.UserID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrUserNotFound) {
				context.Respond(utils.NewUserNotFoundError(msg.UserID.String()))
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch user", err))
			return
		}

		a.state = stateFromUser(user)
		context.Respond(user)

	case *UpdateProfileMsg:
		ctx := stdctx.Background()
		user, err := a.users.GetUser(ctx, msg.UserID)
		if err != nil {
			context.Respond(err)
			return
		}

		user.Bio = msg.Bio
		if msg.StudentID != "" {
			user.StudentID = msg.StudentID
		}
		user.LastActive = time.Now()

		if err := a.users.SaveUser(ctx, user); err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update profile", err))
			return
		}

		a.state = stateFromUser(user)
		context.Respond(user)

	case *ToggleBookmarkMsg:
		ctx := stdctx.Background()

		// The post must exist before it can be bookmarked
		if _, err := a.posts.GetPost(ctx, msg.PostID); err != nil {
			context.Respond(err)
			return
		}

		user, err := a.users.GetUser(ctx, msg.UserID)
		if err != nil {
			context.Respond(err)
			return
		}

		bookmarked := false
		for _, id := range user.Bookmarks {
			if id == msg.PostID {
				bookmarked = true
				break
			}
		}

		if err := a.users.UpdateUserBookmarks(ctx, msg.UserID, msg.PostID, !bookmarked); err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update bookmarks", err))
			return
		}

		if bookmarked {
			context.Respond(&models.StatusResponse{Success: true, Message: "Bookmark removed"})
		} else {
			context.Respond(&models.StatusResponse{Success: true, Message: "Bookmark added"})
		}
	}
}
