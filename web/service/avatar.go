package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"market/config"
	"market/database"
	"market/database/model"
	"market/logger"

	"github.com/google/uuid"
)

// allowedExtensions is the set of accepted avatar image extensions,
// lowercase, without the dot.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type AvatarService struct{}

// SanitizeFilename reduces a client-supplied filename to a safe flat name:
// path components are stripped and anything outside [A-Za-z0-9_.-] becomes
// an underscore, so the result can never escape the upload folder.
func SanitizeFilename(name string) string {
	// Take the last path component, tolerating both separators.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// SaveAvatar validates and stores an uploaded avatar image, then points the
// user's avatar path at it. The stored name is the sanitized original name;
// a later upload with the same name overwrites the earlier file.
func (s *AvatarService) SaveAvatar(user *model.User, file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return ErrNoFile
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedExtensions[ext] {
		logger.Warningf("avatar upload rejected for user %s: extension %q not allowed", user.Username, ext)
		return ErrUnsupportedFileType
	}

	filename := SanitizeFilename(file.Filename)
	if filename == "" || filename == ext {
		filename = uuid.NewString() + "." + ext
	}

	uploadDir := config.GetUploadFolderPath()
	if err := os.MkdirAll(uploadDir, 0o750); err != nil {
		logger.Error("create upload folder err:", err)
		return ErrStorage
	}

	if err := writeUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		logger.Error("save avatar err:", err)
		return ErrStorage
	}

	avatarPath := "images/uploads/" + filename
	db := database.GetDB()
	err := db.Model(model.User{}).
		Where("id = ?", user.Id).
		Update("avatar", avatarPath).
		Error
	if err != nil {
		return err
	}

	user.Avatar = avatarPath
	logger.Infof("avatar of user %s updated to %s", user.Username, avatarPath)
	return nil
}

func writeUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
