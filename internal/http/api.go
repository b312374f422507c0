package http

import (
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propertyhub/internal/auth"
	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
	"propertyhub/internal/service"
	"propertyhub/internal/storage"
)

const imageURLExpiry = 15 * time.Minute

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	properties service.PropertyService
	favorites  service.FavoriteService
	tokens     *auth.TokenManager
	storage    storage.Service
	bucket     string
	keyPrefix  string
	logger     *logrus.Logger
}

func NewHandler(
	users service.UserService,
	properties service.PropertyService,
	favorites service.FavoriteService,
	tokens *auth.TokenManager,
	store storage.Service,
	bucket, keyPrefix string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:      users,
		properties: properties,
		favorites:  favorites,
		tokens:     tokens,
		storage:    store,
		bucket:     bucket,
		keyPrefix:  keyPrefix,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "PropertyHub API Server",
			"status":  "running",
		})
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/auth/signup", h.signup)
		api.POST("/auth/signin", h.signin)

		protected := api.Group("", h.requireAuth)
		{
			protected.GET("/properties", h.listProperties)
			protected.POST("/properties", h.createProperty)
			protected.GET("/properties/:id/images", h.listPropertyImages)
			protected.POST("/properties/:id/images", h.uploadPropertyImage)
			protected.GET("/favorites", h.listFavorites)
			protected.POST("/favorites", h.addFavorite)
			protected.DELETE("/favorites/:id", h.removeFavorite)
		}
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Bio:      req.Bio,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.serverError(c, "signup", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user), "token": token})
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		h.serverError(c, "signin", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user), "token": token})
}

type createPropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Type        string   `json:"type" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Size        float64  `json:"size"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
}

func (h *Handler) createProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.properties.Create(c.Request.Context(), currentUserID(c), service.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Type:        req.Type,
		Category:    req.Category,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Size:        req.Size,
		Images:      req.Images,
		Features:    req.Features,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.serverError(c, "create property", err)
		return
	}

	c.JSON(http.StatusCreated, propertyToResponse(*property))
}

func (h *Handler) listProperties(c *gin.Context) {
	properties, err := h.properties.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.serverError(c, "list properties", err)
		return
	}

	resp := make([]PropertyResponse, len(properties))
	for i := range properties {
		resp[i] = propertyToResponse(properties[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadPropertyImage(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storage service not configured"})
		return
	}

	propertyID := c.Param("id")
	property, err := h.properties.Get(c.Request.Context(), propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.serverError(c, "get property", err)
		return
	}
	if property.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "property belongs to another user"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	key := path.Join(h.keyPrefix, propertyID, uuid.NewString()+filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	if err := h.storage.Upload(c.Request.Context(), h.bucket, key, file, contentType); err != nil {
		h.serverError(c, "upload image", err)
		return
	}

	if err := h.properties.AttachImage(c.Request.Context(), propertyID, currentUserID(c), key); err != nil {
		if delErr := h.storage.DeleteObject(c.Request.Context(), h.bucket, key); delErr != nil {
			h.logger.Warnf("remove orphaned image %s: %v", key, delErr)
		}
		h.serverError(c, "attach image", err)
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, imageURLExpiry)
	if err != nil {
		h.serverError(c, "presign image", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}

func (h *Handler) listPropertyImages(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storage service not configured"})
		return
	}

	property, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.serverError(c, "get property", err)
		return
	}

	resp := make([]ImageResponse, 0, len(property.Images))
	for _, key := range property.Images {
		url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, imageURLExpiry)
		if err != nil {
			h.serverError(c, "presign image", err)
			return
		}
		resp = append(resp, ImageResponse{Key: key, URL: url})
	}
	c.JSON(http.StatusOK, resp)
}

type addFavoriteRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

func (h *Handler) addFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := h.favorites.Add(c.Request.Context(), currentUserID(c), req.PropertyID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyFavorited) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Property already in favorites"})
			return
		}
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.serverError(c, "add favorite", err)
		return
	}

	c.JSON(http.StatusCreated, FavoriteResponse{
		ID:         favorite.ID,
		UserID:     favorite.UserID,
		PropertyID: favorite.PropertyID,
		CreatedAt:  favorite.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) listFavorites(c *gin.Context) {
	entries, err := h.favorites.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.serverError(c, "list favorites", err)
		return
	}

	resp := make([]FavoriteEntryResponse, len(entries))
	for i := range entries {
		resp[i] = FavoriteEntryResponse{
			ID:         entries[i].FavoriteID,
			PropertyID: entries[i].Property.ID,
			Property:   propertyToResponse(entries[i].Property),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	if err := h.favorites.Remove(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		h.serverError(c, "remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.WithError(err).Errorf("%s failed", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type PropertyResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Size        float64  `json:"size"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	CreatedAt   string   `json:"createdAt"`
}

type FavoriteResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
	CreatedAt  string `json:"createdAt"`
}

type FavoriteEntryResponse struct {
	ID         string           `json:"id"`
	PropertyID string           `json:"property_id"`
	Property   PropertyResponse `json:"property"`
}

type ImageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func propertyToResponse(property domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:          property.ID,
		UserID:      property.UserID,
		Title:       property.Title,
		Description: property.Description,
		Price:       property.Price,
		Location:    property.Location,
		Type:        string(property.Type),
		Category:    string(property.Category),
		Bedrooms:    property.Bedrooms,
		Bathrooms:   property.Bathrooms,
		Size:        property.Size,
		Images:      property.Images,
		Features:    property.Features,
		CreatedAt:   property.CreatedAt.Format(time.RFC3339),
	}
}
