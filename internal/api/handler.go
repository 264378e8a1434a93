package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Neiron07/pixel-project/internal/auth"
	"github.com/Neiron07/pixel-project/internal/config"
	"github.com/Neiron07/pixel-project/internal/db"
	"github.com/Neiron07/pixel-project/internal/ingest"
	"github.com/Neiron07/pixel-project/internal/logger"
	"github.com/Neiron07/pixel-project/internal/model"
	"github.com/Neiron07/pixel-project/internal/nav"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	repo      db.Repository
	ingestSvc *ingest.Service
	navSvc    *nav.Service
	cfg       *config.Config
	log       zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	ingestSvc *ingest.Service,
	navSvc *nav.Service,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:      repo,
		ingestSvc: ingestSvc,
		navSvc:    navSvc,
		cfg:       cfg,
		log:       logger.Get(),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		h.log.Warn().Str("email", req.Email).Msg("Registration rejected, email already exists")
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrUserAlreadyExists.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Auth.BcryptCost)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Str("email", user.Email).Msg("User registered successfully")
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Warn().Str("email", req.Email).Msg("Login failed, no user with email")
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.log.Warn().Str("email", req.Email).Msg("Login failed, invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, []byte(h.cfg.Auth.JWTSecret), h.cfg.Auth.TokenTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Str("email", user.Email).Msg("User logged in successfully")
	c.JSON(http.StatusOK, model.AuthResponse{AccessToken: token, Username: user.Username})
}

// UploadFiles ingests every file of a multipart request independently. A
// failure on one file does not roll back the others; the response reports
// the outcome per file.
func (h *Handler) UploadFiles(c *gin.Context) {
	account := AccountFromContext(c)
	if !account.Permissions.Upload {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions (upload)"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	userID := UserIDFromContext(c)
	results := make([]gin.H, 0, len(files))
	failed := 0

	for _, fh := range files {
		content, err := readMultipartFile(fh)
		if err != nil {
			h.log.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to read uploaded file")
			results = append(results, gin.H{"filename": fh.Filename, "error": "failed to read file"})
			failed++
			continue
		}

		record, err := h.ingestSvc.Ingest(c.Request.Context(), userID, fh.Filename, content)
		if err != nil {
			failed++
			if errors.Is(err, apperrors.ErrEmptyUpload) {
				results = append(results, gin.H{"filename": fh.Filename, "error": apperrors.ErrEmptyUpload.Error()})
				continue
			}
			h.log.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to ingest file")
			results = append(results, gin.H{"filename": fh.Filename, "error": "upload failed"})
			continue
		}

		results = append(results, gin.H{
			"file_id":  record.ID,
			"filename": record.Filename,
			"status":   record.Status,
		})
	}

	status := http.StatusOK
	if failed == len(files) {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"files": results})
}

func (h *Handler) ListUserFiles(c *gin.Context) {
	userID := UserIDFromContext(c)

	files, err := h.repo.ListFilesByOwner(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Int64("owner_id", userID).Msg("Failed to list user files")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]model.FileStatusResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, model.FileStatusResponse{
			FileID:    f.ID,
			Filename:  f.Filename,
			Status:    f.Status,
			Reason:    f.Reason,
			UpdatedAt: f.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"files": responses})
}

// GetFileStatus is the polling endpoint: the upload response is immediate,
// the moderation outcome arrives here.
func (h *Handler) GetFileStatus(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	file, err := h.repo.GetFile(c.Request.Context(), fileID, UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": apperrors.ErrFileNotFound.Error()})
			return
		}
		h.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to fetch file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.FileStatusResponse{
		FileID:    file.ID,
		Filename:  file.Filename,
		Status:    file.Status,
		Reason:    file.Reason,
		UpdatedAt: file.UpdatedAt,
	})
}

func (h *Handler) DownloadUserFile(c *gin.Context) {
	account := AccountFromContext(c)
	if !account.Admin && !account.Permissions.Download {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions (download)"})
		return
	}

	fileID, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	file, err := h.repo.GetFile(c.Request.Context(), fileID, UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": apperrors.ErrFileNotFound.Error()})
			return
		}
		h.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to fetch file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	c.Data(http.StatusOK, "application/octet-stream", file.Content)
}

func (h *Handler) Navigate(c *gin.Context) {
	account := AccountFromContext(c)
	requestedPath := c.Param("path")

	listing, err := h.navSvc.List(requestedPath, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrPathOutsideRoot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrPathOutsideRoot.Error()})
			return
		}
		h.log.Error().Err(err).Str("path", requestedPath).Msg("Navigation error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handler) DownloadPath(c *gin.Context) {
	account := AccountFromContext(c)
	if !account.Admin && !account.Permissions.Download {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not enough permissions (download)"})
		return
	}

	pathname := c.Query("pathname")
	fullPath, err := h.navSvc.Resolve(pathname)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrPathOutsideRoot.Error()})
		return
	}

	h.log.Info().Str("path", pathname).Str("account", account.Name).Msg("Downloading file")
	c.FileAttachment(fullPath, pathBase(pathname))
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func pathBase(pathname string) string {
	return filepath.Base(pathname)
}
