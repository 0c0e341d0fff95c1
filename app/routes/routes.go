package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"yatube/app/access"
	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/controllers"
	"yatube/app/middleware"
	"yatube/app/repositories"
	"yatube/app/services"
	"yatube/app/storage"
)

// Dependencies are the long-lived resources the router is built on.
type Dependencies struct {
	DB     *gorm.DB
	Pages  *cache.PageCache
	Images *storage.ImageStore
	Tokens *auth.TokenManager
}

// SetupRoutes wires repositories, services and controllers and returns the
// application router.
func SetupRoutes(deps Dependencies) *mux.Router {
	userRepo := repositories.NewGormUserRepository(deps.DB)
	groupRepo := repositories.NewGormGroupRepository(deps.DB)
	postRepo := repositories.NewGormPostRepository(deps.DB)
	commentRepo := repositories.NewGormCommentRepository(deps.DB)
	followRepo := repositories.NewGormFollowRepository(deps.DB)

	guard := access.NewGuard(access.LoginURL)

	var images services.ImageRemover
	var uploads controllers.ImageStore
	if deps.Images != nil {
		images = deps.Images
		uploads = deps.Images
	}

	feedService := services.NewFeedService(postRepo, commentRepo, groupRepo, userRepo, followRepo, guard)
	postService := services.NewPostService(postRepo, groupRepo, images, guard)
	commentService := services.NewCommentService(commentRepo, postRepo, guard)
	followService := services.NewFollowService(followRepo, userRepo, guard)
	accountService := services.NewAccountService(userRepo, deps.Tokens)
	groupService := services.NewGroupService(groupRepo)

	feedController := controllers.NewFeedController(feedService, deps.Pages)
	postController := controllers.NewPostController(postService, uploads)
	commentController := controllers.NewCommentController(commentService)
	followController := controllers.NewFollowController(followService)
	accountController := controllers.NewAccountController(accountService)
	groupController := controllers.NewGroupController(groupService)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)
	if deps.Tokens != nil {
		router.Use(middleware.Authenticate(deps.Tokens))
	}

	router.NotFoundHandler = middleware.ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"page not found"}` + "\n"))
	}))

	protect := middleware.RequireLogin(guard)
	protected := func(h http.HandlerFunc) http.Handler {
		return protect(h)
	}

	// Feeds
	router.HandleFunc("/", feedController.Index).Methods("GET")
	router.HandleFunc("/group/{slug}/", feedController.Group).Methods("GET")
	router.HandleFunc("/profile/{username}/", feedController.Profile).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/", feedController.PostDetail).Methods("GET")
	router.Handle("/follow/", protected(feedController.Followed)).Methods("GET")

	// Posts and comments
	router.Handle("/create/", protected(postController.Create)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/edit/", protected(postController.Edit)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/delete/", protected(postController.Delete)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/comment/", protected(commentController.Create)).Methods("POST")

	// Subscriptions
	router.Handle("/profile/{username}/follow/", protected(followController.Follow)).Methods("POST")
	router.Handle("/profile/{username}/unfollow/", protected(followController.Unfollow)).Methods("POST")

	// Groups and accounts
	router.HandleFunc("/groups/", groupController.List).Methods("GET")
	router.HandleFunc("/auth/signup/", accountController.Signup).Methods("POST")
	router.HandleFunc("/auth/login/", accountController.LoginPage).Methods("GET")
	router.HandleFunc("/auth/login/", accountController.Login).Methods("POST")

	if deps.Images != nil {
		mediaController := controllers.NewMediaController(deps.Images)
		router.HandleFunc(middleware.MediaPrefix+"{key:.+}", mediaController.Serve).Methods("GET")
	}

	return router
}
