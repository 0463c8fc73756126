package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/avatar"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	httphandler "github.com/MickTheLinuxGeek/ByteBoard/internal/handler/http"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository/mocks"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asViewer injects a resolved viewer the way the middleware chain would.
func asViewer(viewer service.Viewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httphandler.ViewerContextKey, viewer)
		c.Next()
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTagHandler_Suggestions(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	tagService := service.NewTagService(mockTagRepo, mockPostRepo, nil)
	handler := httphandler.NewTagHandler(tagService)

	mockTagRepo.On("Suggest", mock.Anything, "py", service.MaxTagSuggestions).
		Return([]string{"numpy", "python"}, nil).Once()

	router := gin.New()
	router.GET("/api/tags/suggestions", handler.Suggestions)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tags/suggestions?query=Py", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tags":["numpy","python"]}`, w.Body.String())
}

func TestTagHandler_Suggestions_EmptyQuery(t *testing.T) {
	mockTagRepo := new(mocks.TagRepository)
	mockPostRepo := new(mocks.PostRepository)
	handler := httphandler.NewTagHandler(service.NewTagService(mockTagRepo, mockPostRepo, nil))

	router := gin.New()
	router.GET("/api/tags/suggestions", handler.Suggestions)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tags/suggestions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tags":[]}`, w.Body.String())
	mockTagRepo.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
}

func TestForumHandler_Index_BadPageTokenIsNotAnError(t *testing.T) {
	mockTopicRepo := new(mocks.TopicRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockCategoryRepo := new(mocks.CategoryRepository)
	mockTagRepo := new(mocks.TagRepository)
	topicService := service.NewTopicService(
		mockTopicRepo, mockPostRepo, mockCategoryRepo,
		service.NewTagService(mockTagRepo, mockPostRepo, nil),
	)
	handler := httphandler.NewForumHandler(topicService)

	// A garbage token falls back to page 1, offset 0.
	mockTopicRepo.On("ListSticky", mock.Anything, repository.TopicScope{}).
		Return([]domain.Topic{{ID: 1, IsSticky: true}}, nil).Once()
	mockTopicRepo.On("CountRegular", mock.Anything, repository.TopicScope{}).
		Return(int64(7), nil).Once()
	mockTopicRepo.On("ListRegular", mock.Anything, repository.TopicScope{}, 0, 5).
		Return([]domain.Topic{{ID: 2}, {ID: 3}}, nil).Once()

	router := gin.New()
	router.GET("/api/forum", handler.Index)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forum?page=banana", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["sticky"], 1)
	assert.Len(t, body["topics"], 2)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["number"])
	mockTopicRepo.AssertExpectations(t)
}

func TestPostHandler_Edit_NotOwner(t *testing.T) {
	mockPostRepo := new(mocks.PostRepository)
	mockTopicRepo := new(mocks.TopicRepository)
	mockTagRepo := new(mocks.TagRepository)
	postService := service.NewPostService(
		mockPostRepo, mockTopicRepo,
		service.NewTagService(mockTagRepo, mockPostRepo, nil),
	)
	handler := httphandler.NewPostHandler(postService)

	mockPostRepo.On("FindByID", mock.Anything, uint(50)).
		Return(&domain.Post{ID: 50, CreatedByID: 2}, nil).Once()

	router := gin.New()
	router.PUT("/api/forum/posts/:postID",
		asViewer(service.Viewer{UserID: 3, Authenticated: true}), handler.Edit)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/forum/posts/50",
		bytes.NewBufferString(`{"message":"hijacked"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCategoryHandler_Create_NotStaff(t *testing.T) {
	mockCategoryRepo := new(mocks.CategoryRepository)
	mockTopicRepo := new(mocks.TopicRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockTagRepo := new(mocks.TagRepository)
	categoryService := service.NewCategoryService(mockCategoryRepo)
	topicService := service.NewTopicService(
		mockTopicRepo, mockPostRepo, mockCategoryRepo,
		service.NewTagService(mockTagRepo, mockPostRepo, nil),
	)
	handler := httphandler.NewCategoryHandler(categoryService, topicService)

	router := gin.New()
	router.POST("/api/categories",
		asViewer(service.Viewer{UserID: 2, Authenticated: true}), handler.Create)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/categories",
		bytes.NewBufferString(`{"name":"General"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockCategoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTopicHandler_Create_ValidationFieldsInBody(t *testing.T) {
	mockTopicRepo := new(mocks.TopicRepository)
	mockPostRepo := new(mocks.PostRepository)
	mockCategoryRepo := new(mocks.CategoryRepository)
	mockTagRepo := new(mocks.TagRepository)
	topicService := service.NewTopicService(
		mockTopicRepo, mockPostRepo, mockCategoryRepo,
		service.NewTagService(mockTagRepo, mockPostRepo, nil),
	)
	handler := httphandler.NewForumHandler(topicService)

	router := gin.New()
	router.POST("/api/forum/topics",
		asViewer(service.Viewer{UserID: 2, Authenticated: true}), handler.CreateTopic)

	// Whitespace passes binding but fails business validation, so the
	// response carries per-field errors.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/forum/topics",
		bytes.NewBufferString(`{"subject":"  ","message":"  x  "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "subject")
}

func profileServiceForHandler(visibility string) (*httphandler.ProfileHandler, *mocks.UserRepository, *mocks.ProfileRepository) {
	userRepo := new(mocks.UserRepository)
	profileRepo := new(mocks.ProfileRepository)
	topicRepo := new(mocks.TopicRepository)
	postRepo := new(mocks.PostRepository)

	user := &domain.User{ID: 1, Username: "alice"}
	profile := &domain.Profile{ID: 10, UserID: 1, ProfileVisibility: visibility}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	profileRepo.On("FindByUserID", mock.Anything, uint(1)).Return(profile, nil)
	topicRepo.On("ListByAuthor", mock.Anything, uint(1)).Return([]domain.Topic{}, nil)
	postRepo.On("ListByAuthor", mock.Anything, uint(1)).Return([]domain.Post{}, nil)

	svc := service.NewProfileService(userRepo, profileRepo, topicRepo, postRepo, nil, nil)
	return httphandler.NewProfileHandler(svc), userRepo, profileRepo
}

func TestProfileHandler_Show_Public(t *testing.T) {
	handler, _, _ := profileServiceForHandler(domain.VisibilityPublic)

	router := gin.New()
	router.GET("/api/users/:username", handler.Show)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/alice", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "standard", profile["info_level"])
	assert.Equal(t, "alice", profile["username"])
	// Full-level fields must not leak to an anonymous viewer.
	assert.NotContains(t, profile, "profile_visibility")
	assert.NotContains(t, profile, "notify_on_reply")
}

func TestProfileHandler_Update_OversizedAvatarRejectedEarly(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	profileRepo := new(mocks.ProfileRepository)
	topicRepo := new(mocks.TopicRepository)
	postRepo := new(mocks.PostRepository)
	svc := service.NewProfileService(userRepo, profileRepo, topicRepo, postRepo, nil, nil)
	handler := httphandler.NewProfileHandler(svc)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("avatar", "huge.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, avatar.MaxFileSizeBytes+1))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	router := gin.New()
	router.PUT("/api/profile",
		asViewer(service.Viewer{UserID: 1, Authenticated: true}), handler.Update)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/profile", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "avatar")
	profileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileHandler_Show_Hidden(t *testing.T) {
	handler, _, _ := profileServiceForHandler(domain.VisibilityHidden)

	router := gin.New()
	router.GET("/api/users/:username", handler.Show)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users/alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
