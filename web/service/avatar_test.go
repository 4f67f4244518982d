package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"market/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "photo.png", "photo.png"},
		{"spaces", "my photo.png", "my_photo.png"},
		{"path traversal", "../../etc/passwd.png", "passwd.png"},
		{"windows path", `C:\Users\me\photo.jpg`, "photo.jpg"},
		{"cyrillic", "фото.png", "png"},
		{"dotfiles", "..", ""},
		{"leading dots", "...png", "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.in))
		})
	}
}

// makeFileHeader builds a real multipart.FileHeader the way gin would hand
// it to the handler.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/account/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["avatar"][0]
}

func TestSaveAvatar(t *testing.T) {
	setup()
	defer teardown()
	t.Setenv("MARKET_STATIC_FOLDER", t.TempDir())

	userService := UserService{}
	avatarService := AvatarService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	file := makeFileHeader(t, "selfie.png", []byte("not really a png"))
	assert.NoError(t, avatarService.SaveAvatar(user, file))
	assert.Equal(t, "images/uploads/selfie.png", user.Avatar)

	stored := userService.GetUser(user.Id)
	assert.Equal(t, "images/uploads/selfie.png", stored.Avatar)

	data, err := os.ReadFile(filepath.Join(config.GetUploadFolderPath(), "selfie.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("not really a png"), data)
}

func TestSaveAvatarRejectsBadExtension(t *testing.T) {
	setup()
	defer teardown()
	t.Setenv("MARKET_STATIC_FOLDER", t.TempDir())

	userService := UserService{}
	avatarService := AvatarService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)
	before := user.Avatar

	file := makeFileHeader(t, "payload.exe", []byte("mz"))
	err = avatarService.SaveAvatar(user, file)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	stored := userService.GetUser(user.Id)
	assert.Equal(t, before, stored.Avatar, "a rejected upload must not change the avatar path")
}

func TestSaveAvatarSanitizesTraversal(t *testing.T) {
	setup()
	defer teardown()
	t.Setenv("MARKET_STATIC_FOLDER", t.TempDir())

	userService := UserService{}
	avatarService := AvatarService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	file := makeFileHeader(t, "../../escape.png", []byte("x"))
	assert.NoError(t, avatarService.SaveAvatar(user, file))
	assert.Equal(t, "images/uploads/escape.png", user.Avatar)

	_, err = os.Stat(filepath.Join(config.GetUploadFolderPath(), "escape.png"))
	assert.NoError(t, err)
}

func TestSaveAvatarOverwritesSameName(t *testing.T) {
	setup()
	defer teardown()
	t.Setenv("MARKET_STATIC_FOLDER", t.TempDir())

	userService := UserService{}
	avatarService := AvatarService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	assert.NoError(t, avatarService.SaveAvatar(user, makeFileHeader(t, "a.png", []byte("first"))))
	assert.NoError(t, avatarService.SaveAvatar(user, makeFileHeader(t, "a.png", []byte("second"))))

	data, err := os.ReadFile(filepath.Join(config.GetUploadFolderPath(), "a.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), data, "last writer wins on name collision")
}
